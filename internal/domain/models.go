package domain

// Models lists every persisted model, in migration order.
func Models() []interface{} {
	return []interface{}{
		&Customer{},
		&Partner{},
		&PartnerGroup{},
		&PartnerGroupLink{},
		&Unit{},
		&UnitPartner{},
		&Contract{},
		&Installment{},
		&Safe{},
		&Voucher{},
		&Transfer{},
		&Broker{},
		&BrokerDue{},
		&PartnerDebt{},
		&AuditLog{},
		&AppLock{},
	}
}
