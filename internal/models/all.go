package models

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&AvailabilityWindow{},
		&Appointment{},
		&Attachment{},
		&VerificationCode{},
		&AuditLog{},
	}
}
