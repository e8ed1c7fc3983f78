package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Signups = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackhive_signups_total", Help: "Total user signups"},
	)
	Registrations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackhive_registrations_total", Help: "Total competition registrations"},
	)
	Submissions = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackhive_submissions_total", Help: "Total competition submissions"},
	)
	AuthDenials = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackhive_auth_denials_total", Help: "Total authorization denials"},
	)
)

func Register() {
	prometheus.MustRegister(Signups, Registrations, Submissions, AuthDenials)
}
