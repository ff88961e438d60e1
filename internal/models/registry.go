package models

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Product{},
		&Employee{},
		&CSRIcon{},
		&ServiceOffering{},
		&Contact{},
		&Review{},
		&AuditLog{},
	}
}
