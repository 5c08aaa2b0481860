package models

// OperatorStats summarizes an operator's fleet and sales
type OperatorStats struct {
	TotalBuses     int     `json:"total_buses"`
	TotalRoutes    int     `json:"total_routes"`
	TotalBookings  int     `json:"total_bookings"`
	PaidBookings   int     `json:"paid_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
	SeatsSold      int     `json:"seats_sold"`
	CancelledCount int     `json:"cancelled_count"`
}

// PlatformStats summarizes the whole platform for the admin dashboard
type PlatformStats struct {
	TotalUsers      int     `json:"total_users"`
	TotalOperators  int     `json:"total_operators"`
	TotalBookings   int     `json:"total_bookings"`
	PaidBookings    int     `json:"paid_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
	OpenComplaints  int     `json:"open_complaints"`
	TotalComplaints int     `json:"total_complaints"`
}
