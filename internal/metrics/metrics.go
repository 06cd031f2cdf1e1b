package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for auth counters.
const (
	ResultOK           = "ok"
	ResultExpired      = "expired"
	ResultBadSignature = "bad_signature"
	ResultMalformed    = "malformed"
	ResultWrongKind    = "wrong_kind"
	ResultUnknownUser  = "unknown_user"
	ResultRejected     = "rejected"
)

// Metrics holds the counters the auth and purchase paths report into. Token
// failure reasons are only ever visible here and in logs, never on the wire.
type Metrics struct {
	TokenValidations *prometheus.CounterVec
	Logins           *prometheus.CounterVec
	Signups          *prometheus.CounterVec
	PurchasesCreated prometheus.Counter
	PurchasesSkipped prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TokenValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "auth",
			Name:      "token_validations_total",
			Help:      "Access token validations by result",
		}, []string{"result"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by result",
		}, []string{"result"}),
		Signups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "auth",
			Name:      "signups_total",
			Help:      "Signup attempts by result",
		}, []string{"result"}),
		PurchasesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "purchase",
			Name:      "records_created_total",
			Help:      "Purchase records created",
		}),
		PurchasesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "purchase",
			Name:      "records_skipped_total",
			Help:      "Purchase requests skipped because the course was already owned",
		}),
	}
}

// NewNop returns metrics backed by a throwaway registry, for tests and
// optional wiring.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
