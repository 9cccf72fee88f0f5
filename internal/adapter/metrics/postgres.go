package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// QueryTracer implements pgx.QueryTracer, labelling queries by their leading SQL verb.
type QueryTracer struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

var _ pgx.QueryTracer = (*QueryTracer)(nil)

type queryStartKey struct{}

type queryStart struct {
	at   time.Time
	verb string
}

func NewQueryTracer(reg prometheus.Registerer) *QueryTracer {
	t := &QueryTracer{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query latency in seconds, by SQL verb.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "errors_total",
			Help:      "Failed database queries, by SQL verb.",
		}, []string{"query"}),
	}

	reg.MustRegister(t.duration, t.errors)
	return t
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), verb: queryVerb(data.SQL)})
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	qs, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	t.duration.WithLabelValues(qs.verb).Observe(time.Since(qs.at).Seconds())
	if data.Err != nil {
		t.errors.WithLabelValues(qs.verb).Inc()
	}
}

// queryVerb keeps label cardinality bounded: SELECT, INSERT, ... or "other".
func queryVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "other"
	}
	switch verb := strings.ToUpper(fields[0]); verb {
	case "SELECT", "INSERT", "UPDATE", "DELETE", "WITH", "BEGIN", "COMMIT", "ROLLBACK", "CREATE", "DROP", "ALTER", "TRUNCATE":
		return verb
	default:
		return "other"
	}
}
