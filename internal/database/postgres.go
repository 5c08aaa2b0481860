package database

// NewPostgresStores wires every repository against one connection
func NewPostgresStores(db DB) Stores {
	return Stores{
		Users:      NewUserRepository(db),
		Operators:  NewOperatorRepository(db),
		Buses:      NewBusRepository(db),
		Routes:     NewRouteRepository(db),
		Bookings:   NewBookingRepository(db),
		Complaints: NewComplaintRepository(db),
	}
}
