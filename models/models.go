package models

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&Service{},
		&Box{},
		&CarModel{},
		&Engine{},
		&Client{},
		&ClientCar{},
		&Employee{},
		&Specialization{},
		&Order{},
		&OrderLine{},
	}
}
