package decay

import "math"

// synthDecay builds a noiseless decay on channel "pm2.5" sampled every dt seconds.
func synthDecay(c0, rate, dt float64, n int) TimeSeries {
	ts := TimeSeries{Time: make([]float64, n), Channels: map[string][]float64{"pm2.5": make([]float64, n)}}
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		ts.Time[i] = t
		ts.Channels["pm2.5"][i] = c0 * math.Exp(-rate*t/3600)
	}
	return ts
}

// chamberRun prepends a rise to the peak and flags the first satRun samples
// from the peak as saturated on the ">0.3" channel.
func chamberRun(rise []float64, c0, rate, dt float64, n, satRun int) TimeSeries {
	decay := synthDecay(c0, rate, dt, n)
	total := len(rise) + n
	ts := TimeSeries{
		Time: make([]float64, total),
		Channels: map[string][]float64{
			"pm2.5": make([]float64, total),
			">0.3":  make([]float64, total),
		},
	}
	for i := 0; i < total; i++ {
		ts.Time[i] = 100 + float64(i)*dt
		if i < len(rise) {
			ts.Channels["pm2.5"][i] = rise[i]
		} else {
			ts.Channels["pm2.5"][i] = decay.Channels["pm2.5"][i-len(rise)]
		}
		if i < len(rise)+satRun {
			ts.Channels[">0.3"][i] = 65535
		} else {
			ts.Channels[">0.3"][i] = 1000
		}
	}
	return ts
}

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }
