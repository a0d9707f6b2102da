package models

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Neighborhood{},
		&EnergySource{},
		&User{},
		&Dealership{},
		&ChargingStation{},
		&SustainableStation{},
		&StationStatus{},
		&Vehicle{},
		&Reservation{},
		&ChargingHistory{},
		&ChargingExpense{},
	}
}
