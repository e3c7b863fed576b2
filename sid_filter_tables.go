// sid_filter_tables.go - Measured cutoff curves and the spline plotter

/*
 ██████  ██▓▓█████▄   ▄████  ██▀███   ▄▄▄       ██▓███   ██░ ██
▒██    ▒ ▓██▒▒██▀ ██▌ ██▒ ▀█▒▓██ ▒ ██▒▒████▄    ▓██░  ██▒▓██░ ██▒
░ ▓██▄   ▒██▒░██   █▌▒██░▄▄▄░▓██ ░▄█ ▒▒██  ▀█▄  ▓██░ ██▓▒▒██▀▀██░
  ▒   ██▒░██░░▓█▄   ▌░▓█  ██▓▒██▀▀█▄  ░██▄▄▄▄██ ▒██▄█▓▒ ▒░▓█ ░██
▒██████▒▒░██░░▒████▓ ░▒▓███▀▒░██▓ ▒██▒ ▓█   ▓██▒▒██▒ ░  ░░▓█▒░██▓
▒ ▒▓▒ ▒ ░░▓   ▒▒▓  ▒  ░▒   ▒ ░ ▒▓ ░▒▓░ ▒▒   ▓▒█░▒▓▒░ ░  ░ ▒ ░░▒░▒
░ ░▒  ░ ░ ▒ ░ ░ ▒  ▒   ░   ░   ░▒ ░ ▒░  ▒   ▒▒ ░░▒ ░      ▒ ░▒░ ░
░  ░  ░   ▒ ░ ░ ░  ░ ░ ░   ░   ░░   ░   ░   ░▒ ░░        ░  ░░ ░
      ░   ░     ░          ░    ░           ░  ░          ░  ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SIDGraph
License: GPLv3 or later
*/

/*
The mapping from the 11-bit cutoff register to the filter's center
frequency is empirical, not algorithmic. The control points below are the
measured calibration data for each die revision, carried verbatim; the
full 2048-entry tables are plotted from them at init with a cubic spline
(repeated endpoints clamp the end slopes). Do not re-derive these
analytically - the 6581 curve in particular has a deliberate discontinuity
at register value 1024 that no closed form reproduces.
*/

package sidgraph

type splinePoint struct {
	x, y float64
}

// Measured cutoff control points for the MOS 6581. Strongly non-linear:
// compressed below register 768, a jump discontinuity at 1024, then a
// broad sweep up to 18 kHz.
var f0Points6581 = []splinePoint{
	{0, 220}, {0, 220},
	{128, 230}, {256, 250}, {384, 300}, {512, 420},
	{640, 780}, {768, 1600}, {832, 2300}, {896, 3200},
	{960, 4300}, {992, 5000}, {1008, 5400}, {1016, 5700},
	{1023, 6000}, {1023, 6000},
	{1024, 4600}, {1024, 4600},
	{1032, 4800}, {1056, 5300}, {1088, 6000}, {1120, 6600},
	{1152, 7200}, {1280, 9500}, {1408, 12000}, {1536, 14500},
	{1664, 16000}, {1792, 17100}, {1920, 17700},
	{2047, 18000}, {2047, 18000},
}

// Measured cutoff control points for the MOS 8580: near-linear from DC to
// 12.5 kHz.
var f0Points8580 = []splinePoint{
	{0, 0}, {0, 0},
	{128, 800}, {256, 1600}, {384, 2500}, {512, 3300},
	{640, 4100}, {768, 4800}, {896, 5600}, {1024, 6500},
	{1152, 7500}, {1280, 8400}, {1408, 9200}, {1536, 9800},
	{1664, 10500}, {1792, 11000}, {1920, 11700},
	{2047, 12500}, {2047, 12500},
}

var (
	filterCutoff6581 [2048]int16
	filterCutoff8580 [2048]int16
)

// plotSpline fills table with a cubic interpolation of the control
// points. Each interior segment takes its end slopes from the neighbouring
// points; coincident points clamp the slope at the curve ends. This is the
// same scheme the calibration data was published for, and it preserves the
// monotonic runs of the measurements where linear interpolation would
// flatten the knee of the 6581 curve.
func plotSpline(points []splinePoint, table *[2048]int16) {
	for i := 0; i+3 < len(points); i++ {
		p0, p1, p2, p3 := points[i], points[i+1], points[i+2], points[i+3]
		if p1.x == p2.x {
			continue
		}

		var k1, k2 float64
		if p0.x == p1.x {
			// Clamped start slope.
			k2 = (p3.y - p1.y) / (p3.x - p1.x)
			k1 = (3*(p2.y-p1.y)/(p2.x-p1.x) - k2) / 2
		} else if p2.x == p3.x {
			// Clamped end slope.
			k1 = (p2.y - p0.y) / (p2.x - p0.x)
			k2 = (3*(p2.y-p1.y)/(p2.x-p1.x) - k1) / 2
		} else {
			k1 = (p2.y - p0.y) / (p2.x - p0.x)
			k2 = (p3.y - p1.y) / (p3.x - p1.x)
		}

		plotSegment(p1.x, p1.y, p2.x, p2.y, k1, k2, table)
	}
}

// plotSegment evaluates the cubic through (x1,y1)-(x2,y2) with end slopes
// k1, k2 at every integer register value in the segment.
func plotSegment(x1, y1, x2, y2, k1, k2 float64, table *[2048]int16) {
	dx := x2 - x1
	dy := y2 - y1

	a := ((k1+k2)-2*dy/dx) / (dx * dx)
	b := ((k2-k1)/dx - 3*(x1+x2)*a) / 2
	c := k1 - (3*x1*a+2*b)*x1
	d := y1 - ((x1*a+b)*x1+c)*x1

	for x := int(x1); x <= int(x2); x++ {
		if x < 0 || x > 2047 {
			continue
		}
		fx := float64(x)
		y := ((a*fx+b)*fx + c) * fx
		y += d
		if y < 0 {
			y = 0
		}
		table[x] = int16(y + 0.5)
	}
}

func init() {
	plotSpline(f0Points6581, &filterCutoff6581)
	plotSpline(f0Points8580, &filterCutoff8580)
}
