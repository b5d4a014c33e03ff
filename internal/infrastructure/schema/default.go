package schema

import (
	"sync"

	"github.com/credito/backend/internal/domain/identity"
	"github.com/credito/backend/internal/domain/lending"
)

// Table names.
const (
	TableClients        = "clients"
	TableAdvisers       = "advisers"
	TableCredits        = "credits"
	TableCreditPayments = "credit_payments"
	TableUsers          = "users"
	TableTeams          = "teams"
	TableTeamMembers    = "team_members"
	TableActivityLogs   = "activity_logs"
	TableInvitations    = "invitations"
)

// Enum names.
const (
	EnumStatus              = "status"
	EnumPayment             = "payment"
	EnumTimeBetweenPayments = "timeBetweenPayments"
)

// Unique indexes beyond single-column UNIQUE constraints.
const (
	IndexCreditPaymentsNro = "credit_payments_credit_id_nro_key"
	IndexTeamMembersPair   = "team_members_user_id_team_id_key"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the application registry, building it on first use. A
// malformed declaration is a programming error and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewApplicationBuilder().MustBuild()
	})
	return defaultRegistry
}

// NewApplicationBuilder declares the nine application tables.
func NewApplicationBuilder() *Builder {
	b := NewBuilder().
		Enum(EnumStatus, lending.StatusValues()...).
		Enum(EnumPayment, lending.PaymentStatusValues()...).
		Enum(EnumTimeBetweenPayments, lending.PaymentFrequencyValues()...)

	b.Table(TableClients, partyColumns()...)
	b.Table(TableAdvisers, partyColumns()...)

	b.Table(TableCredits,
		Serial("id"),
		Integer("client_id").ReferencesColumn(TableClients, "id"),
		Integer("adviser_id").ReferencesColumn(TableAdvisers, "id"),
		EnumColumn("status", EnumPayment).DefaultTo(string(lending.PaymentPending)),
		Timestamp("start_date").NotNull(),
		Timestamp("end_date").NotNull(),
		Decimal("credit_amount").NotNull(),
		Decimal("percentage").NotNull(),
		Integer("quotas").NotNull(),
		Decimal("base_amount").NotNull(),
		Decimal("interest_amount").NotNull(),
		Decimal("fee_amount").NotNull(),
		Decimal("total_interest").NotNull(),
		Decimal("total").NotNull(),
		EnumColumn("time_between_payments", EnumTimeBetweenPayments).NotNull().DefaultTo(string(lending.EveryWeek)),
	)

	b.Table(TableCreditPayments,
		Serial("id"),
		Integer("credit_id").ReferencesColumn(TableCredits, "id"),
		EnumColumn("status", EnumPayment).DefaultTo(string(lending.PaymentPending)),
		Integer("nro").NotNull(),
		Timestamp("payment_date").NotNull(),
		Timestamp("date_paid"),
		Decimal("base_amount").NotNull(),
		Decimal("interest_amount").NotNull(),
		Decimal("total_interest").NotNull(),
	)
	b.UniqueIndex(TableCreditPayments, IndexCreditPaymentsNro, "credit_id", "nro")

	b.Table(TableUsers,
		Serial("id"),
		Varchar("name", 100),
		Varchar("email", 255).NotNull().AsUnique(),
		Text("password_hash").NotNull(),
		Varchar("role", 20).NotNull().DefaultTo(string(identity.DefaultUserRole)),
		Timestamp("created_at").NotNull().DefaultNow(),
		Timestamp("updated_at").NotNull().DefaultNow(),
		Timestamp("deleted_at"),
	)

	b.Table(TableTeams,
		Serial("id"),
		Varchar("name", 100).NotNull(),
		Timestamp("created_at").NotNull().DefaultNow(),
		Timestamp("updated_at").NotNull().DefaultNow(),
		Text("stripe_customer_id").AsUnique(),
		Text("stripe_subscription_id").AsUnique(),
		Text("stripe_product_id"),
		Varchar("plan_name", 50),
		Varchar("subscription_status", 20),
	)

	b.Table(TableTeamMembers,
		Serial("id"),
		Integer("user_id").NotNull().ReferencesColumn(TableUsers, "id"),
		Integer("team_id").NotNull().ReferencesColumn(TableTeams, "id"),
		Varchar("role", 50).NotNull(),
		Timestamp("joined_at").NotNull().DefaultNow(),
	)
	b.UniqueIndex(TableTeamMembers, IndexTeamMembersPair, "user_id", "team_id")

	b.Table(TableActivityLogs,
		Serial("id"),
		Integer("team_id").NotNull().ReferencesColumn(TableTeams, "id"),
		Integer("user_id").ReferencesColumn(TableUsers, "id"),
		Text("action").NotNull(),
		Timestamp("timestamp").NotNull().DefaultNow(),
		Varchar("ip_address", 45),
	)

	b.Table(TableInvitations,
		Serial("id"),
		Integer("team_id").NotNull().ReferencesColumn(TableTeams, "id"),
		Varchar("email", 255).NotNull(),
		Varchar("role", 50).NotNull(),
		Integer("invited_by").NotNull().ReferencesColumn(TableUsers, "id"),
		Timestamp("invited_at").NotNull().DefaultNow(),
		Varchar("status", 20).NotNull().DefaultTo(string(identity.InvitationPending)),
	)

	return b
}

func partyColumns() []Column {
	return []Column{
		Serial("id"),
		Varchar("name", 100),
		Varchar("last_name", 100),
		Varchar("address", 250),
		Varchar("phone", 20),
		Varchar("dni_type", 20),
		Varchar("dni", 20),
		EnumColumn("status", EnumStatus).DefaultTo(string(lending.StatusActive)),
		Text("comment"),
	}
}
