package metrics

import "time"

type noopMetrics struct{}

var NoopMetrics Metricer = new(noopMetrics)

func (*noopMetrics) RecordInfo(version string) {}
func (*noopMetrics) RecordUp()                 {}

func (*noopMetrics) RecordRequest(outcome string)                {}
func (*noopMetrics) RecordFetch(duration time.Duration, ok bool) {}
func (*noopMetrics) RecordMarkIV(iv float64)                     {}
func (*noopMetrics) RecordCallbacks(n int)                       {}
