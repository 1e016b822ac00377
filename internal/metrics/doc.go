// Package metrics records launcher stage timings and outcomes.
//
// Components receive a Recorder and default to NoopRecorder, so callers
// never need nil checks:
//
//	recorder := metrics.NoopRecorder{}
//
// When --metrics-file is given, the CLI swaps in a PrometheusRecorder backed
// by its own registry and writes the registry to disk after the run in the
// node_exporter textfile format:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	defer metrics.WriteTextfile(reg, path)
package metrics
