package domain

import "github.com/google/uuid"

// PaymentDetail captures how money physically moved for a transaction.
type PaymentDetail struct {
	PaymentTypeID string
	AccountNumber string
	ChequeNumber  string
	RoutingCode   string
	ReceiptNumber string
	BankNumber    string
}

// NewPaymentDetail assigns a receipt number if the channel did not provide one.
func NewPaymentDetail(paymentTypeID, accountNumber, chequeNumber, routingCode, receiptNumber, bankNumber string) *PaymentDetail {
	if receiptNumber == "" {
		receiptNumber = uuid.NewString()
	}
	return &PaymentDetail{
		PaymentTypeID: paymentTypeID,
		AccountNumber: accountNumber,
		ChequeNumber:  chequeNumber,
		RoutingCode:   routingCode,
		ReceiptNumber: receiptNumber,
		BankNumber:    bankNumber,
	}
}
