package logging

import "time"

// Timer measures one operation between Start and End
type Timer struct {
	name  string
	start time.Time
}

// Start begins timing name. Pair it with End or EndWithCount:
//
//	tc := logging.Start("probe api server")
//	info, err := clientset.Discovery().ServerVersion()
//	logging.End(tc)
func Start(name string) Timer {
	return Timer{name: name, start: time.Now()}
}

// End logs the elapsed time at debug level
func End(tc Timer) {
	tc.log()
}

// EndWithCount logs the elapsed time together with how many items the
// operation produced
func EndWithCount(tc Timer, count int) {
	tc.log("count", count)
}

func (tc Timer) log(args ...any) {
	if !IsEnabled() {
		return
	}
	elapsed := time.Since(tc.start)
	Get().Debug(tc.name, append([]any{"duration", elapsed.String(), "ms", elapsed.Milliseconds()}, args...)...)
}
