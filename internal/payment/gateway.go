package payment

import (
	"log"

	"github.com/google/uuid"

	"github.com/campusbook/room-booking-backend/internal/money"
)

// Method tags how a charge is settled.
type Method string

const (
	MethodCredit        Method = "credit"
	MethodDebit         Method = "debit"
	MethodInstitutional Method = "institutional"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodCredit, MethodDebit, MethodInstitutional:
		return true
	}
	return false
}

// Gateway is the external payment processor capability. Process charges a
// positive amount with the given method tag and reports success. Concrete
// processors are collaborators outside this service.
type Gateway interface {
	Process(method Method, amount money.Money) bool
}

// LoggingGateway is the built-in Gateway used when no real processor is
// configured. It accepts every positive charge and logs a receipt reference.
type LoggingGateway struct{}

func NewLoggingGateway() *LoggingGateway {
	return &LoggingGateway{}
}

func (g *LoggingGateway) Process(method Method, amount money.Money) bool {
	if amount.Cents <= 0 {
		log.Printf("payment: rejected non-positive charge %s via %s", amount, method)
		return false
	}
	receipt := uuid.New().String()
	log.Printf("payment: charged %s via %s, receipt %s", amount, method, receipt)
	return true
}
