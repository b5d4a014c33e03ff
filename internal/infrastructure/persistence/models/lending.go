package models

import (
	"time"

	"github.com/credito/backend/internal/domain/lending"
	"github.com/shopspring/decimal"
)

// PartyModel holds the columns clients and advisers share.
type PartyModel struct {
	ID       int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string         `gorm:"column:name;type:varchar(100)"`
	LastName string         `gorm:"column:last_name;type:varchar(100)"`
	Address  string         `gorm:"column:address;type:varchar(250)"`
	Phone    string         `gorm:"column:phone;type:varchar(20)"`
	DNIType  string         `gorm:"column:dni_type;type:varchar(20)"`
	DNI      string         `gorm:"column:dni;type:varchar(20);index"`
	Status   lending.Status `gorm:"column:status;default:active"`
	Comment  string         `gorm:"column:comment;type:text"`
}

func (m *PartyModel) profile() lending.Profile {
	return lending.Profile{
		Name:     m.Name,
		LastName: m.LastName,
		Address:  m.Address,
		Phone:    m.Phone,
		DNIType:  m.DNIType,
		DNI:      m.DNI,
	}
}

func (m *PartyModel) fromInsert(p lending.Profile, status *lending.Status, comment string) {
	m.Name = p.Name
	m.LastName = p.LastName
	m.Address = p.Address
	m.Phone = p.Phone
	m.DNIType = p.DNIType
	m.DNI = p.DNI
	if status != nil {
		m.Status = *status
	}
	m.Comment = comment
}

// ClientModel is the persistence model for clients.
type ClientModel struct {
	PartyModel
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client.
func (m *ClientModel) ToDomain() *lending.Client {
	return &lending.Client{
		ID:      m.ID,
		Profile: m.profile(),
		Status:  m.Status,
		Comment: m.Comment,
	}
}

// ClientModelFromInsert builds a model for a new client. An omitted status is
// left zero so the column default applies.
func ClientModelFromInsert(in lending.ClientInsert) *ClientModel {
	m := &ClientModel{}
	m.fromInsert(in.Profile, in.Status, in.Comment)
	return m
}

// AdviserModel is the persistence model for advisers.
type AdviserModel struct {
	PartyModel
}

// TableName returns the table name for GORM
func (AdviserModel) TableName() string {
	return "advisers"
}

// ToDomain converts the persistence model to a domain Adviser.
func (m *AdviserModel) ToDomain() *lending.Adviser {
	return &lending.Adviser{
		ID:      m.ID,
		Profile: m.profile(),
		Status:  m.Status,
		Comment: m.Comment,
	}
}

// AdviserModelFromInsert builds a model for a new adviser.
func AdviserModelFromInsert(in lending.AdviserInsert) *AdviserModel {
	m := &AdviserModel{}
	m.fromInsert(in.Profile, in.Status, in.Comment)
	return m
}

// CreditModel is the persistence model for credits.
type CreditModel struct {
	ID                  int64                    `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID            *int64                   `gorm:"column:client_id;index"`
	AdviserID           *int64                   `gorm:"column:adviser_id;index"`
	Status              lending.PaymentStatus    `gorm:"column:status;default:pending"`
	StartDate           time.Time                `gorm:"column:start_date;not null"`
	EndDate             time.Time                `gorm:"column:end_date;not null"`
	CreditAmount        decimal.Decimal          `gorm:"column:credit_amount;type:numeric;not null"`
	Percentage          decimal.Decimal          `gorm:"column:percentage;type:numeric;not null"`
	Quotas              int                      `gorm:"column:quotas;not null"`
	BaseAmount          decimal.Decimal          `gorm:"column:base_amount;type:numeric;not null"`
	InterestAmount      decimal.Decimal          `gorm:"column:interest_amount;type:numeric;not null"`
	FeeAmount           decimal.Decimal          `gorm:"column:fee_amount;type:numeric;not null"`
	TotalInterest       decimal.Decimal          `gorm:"column:total_interest;type:numeric;not null"`
	Total               decimal.Decimal          `gorm:"column:total;type:numeric;not null"`
	TimeBetweenPayments lending.PaymentFrequency `gorm:"column:time_between_payments;not null;default:every-week"`
}

// TableName returns the table name for GORM
func (CreditModel) TableName() string {
	return "credits"
}

// ToDomain converts the persistence model to a domain Credit.
func (m *CreditModel) ToDomain() *lending.Credit {
	return &lending.Credit{
		ID:                  m.ID,
		ClientID:            m.ClientID,
		AdviserID:           m.AdviserID,
		Status:              m.Status,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		CreditAmount:        m.CreditAmount,
		Percentage:          m.Percentage,
		Quotas:              m.Quotas,
		BaseAmount:          m.BaseAmount,
		InterestAmount:      m.InterestAmount,
		FeeAmount:           m.FeeAmount,
		TotalInterest:       m.TotalInterest,
		Total:               m.Total,
		TimeBetweenPayments: m.TimeBetweenPayments,
	}
}

// CreditModelFromInsert builds a model for a new credit.
func CreditModelFromInsert(in lending.CreditInsert) *CreditModel {
	m := &CreditModel{
		ClientID:       optionalID(in.ClientID),
		AdviserID:      in.AdviserID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		CreditAmount:   in.CreditAmount,
		Percentage:     in.Percentage,
		Quotas:         in.Quotas,
		BaseAmount:     in.BaseAmount,
		InterestAmount: in.InterestAmount,
		FeeAmount:      in.FeeAmount,
		TotalInterest:  in.TotalInterest,
		Total:          in.Total,
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if in.TimeBetweenPayments != nil {
		m.TimeBetweenPayments = *in.TimeBetweenPayments
	}
	return m
}

// CreditPaymentModel is the persistence model for credit_payments.
type CreditPaymentModel struct {
	ID             int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	CreditID       *int64                `gorm:"column:credit_id;uniqueIndex:credit_payments_credit_id_nro_key,priority:1"`
	Status         lending.PaymentStatus `gorm:"column:status;default:pending"`
	Nro            int                   `gorm:"column:nro;not null;uniqueIndex:credit_payments_credit_id_nro_key,priority:2"`
	PaymentDate    time.Time             `gorm:"column:payment_date;not null"`
	DatePaid       *time.Time            `gorm:"column:date_paid"`
	BaseAmount     decimal.Decimal       `gorm:"column:base_amount;type:numeric;not null"`
	InterestAmount decimal.Decimal       `gorm:"column:interest_amount;type:numeric;not null"`
	TotalInterest  decimal.Decimal       `gorm:"column:total_interest;type:numeric;not null"`
}

// TableName returns the table name for GORM
func (CreditPaymentModel) TableName() string {
	return "credit_payments"
}

// ToDomain converts the persistence model to a domain CreditPayment.
func (m *CreditPaymentModel) ToDomain() *lending.CreditPayment {
	return &lending.CreditPayment{
		ID:             m.ID,
		CreditID:       m.CreditID,
		Status:         m.Status,
		Nro:            m.Nro,
		PaymentDate:    m.PaymentDate,
		DatePaid:       m.DatePaid,
		BaseAmount:     m.BaseAmount,
		InterestAmount: m.InterestAmount,
		TotalInterest:  m.TotalInterest,
	}
}

// CreditPaymentModelFromInsert builds a model for a new installment.
func CreditPaymentModelFromInsert(in lending.CreditPaymentInsert) *CreditPaymentModel {
	m := &CreditPaymentModel{
		CreditID:       optionalID(in.CreditID),
		Nro:            in.Nro,
		PaymentDate:    in.PaymentDate.UTC(),
		DatePaid:       utcTime(in.DatePaid),
		BaseAmount:     in.BaseAmount,
		InterestAmount: in.InterestAmount,
		TotalInterest:  in.TotalInterest,
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	return m
}
