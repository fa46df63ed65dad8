package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "choicefiction_sign_ins_total",
			Help: "Total number of OAuth sign-in attempts by provider and status.",
		},
		[]string{"provider", "status"},
	)

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "choicefiction_token_verifications_total",
			Help: "Total number of session token verifications by status.",
		},
		[]string{"status"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "choicefiction_uploads_total",
			Help: "Total number of image uploads by status.",
		},
		[]string{"status"},
	)
)
