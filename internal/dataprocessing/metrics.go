package dataprocessing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sailcli_reports_parsed_total",
		Help: "Number of sail-report workbooks parsed successfully.",
	})
	rowsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sailcli_rows_parsed_total",
		Help: "Number of activity rows parsed into records.",
	})
	rowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sailcli_rows_skipped_total",
		Help: "Number of unparsable activity rows skipped with a warning.",
	})
)
