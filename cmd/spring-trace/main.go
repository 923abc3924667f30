// spring-trace prints the step response of a variation's tilt spring
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/vmath"
)

func main() {
	var (
		variation = flag.String("variation", parameter.DefaultVariation, "variation preset, or 'all' for a summary of every preset")
		rollDeg   = flag.Float64("roll", 20, "constant roll input in degrees")
		duration  = flag.Duration("duration", 2*time.Second, "simulated time")
		every     = flag.Int("every", 12, "print every n-th step")
		method    = flag.String("integrator", string(integratorExact), "harmonica|euler")
		stiffness = flag.Float64("stiffness", parameter.DefaultStiffness, "spring constant")
	)
	flag.Parse()

	integ := integrator(*method)
	if integ != integratorExact && integ != integratorEuler {
		fmt.Fprintf(os.Stderr, "unknown integrator %q\n", *method)
		os.Exit(1)
	}
	if *every < 1 {
		*every = 1
	}

	opts := traceOptions{
		stiffness:  *stiffness,
		roll:       vmath.DegToRad(*rollDeg),
		duration:   *duration,
		integrator: integ,
	}

	if *variation == "all" {
		printSummary(opts)
		return
	}

	if !parameter.IsKnown(*variation) {
		fmt.Fprintf(os.Stderr, "unknown variation %q, using %s\n", *variation, parameter.DefaultVariation)
	}
	opts.variation = parameter.Lookup(*variation)
	res := runTrace(opts)

	fmt.Printf("variation %s  damping %.1f  zeta %.3f  omega %.2f rad/s  target %+.4f rad  integrator %s\n\n",
		opts.variation.Name, opts.variation.Damping, res.ratio, res.angularFreq, res.target, integ)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "step\tt(ms)\tvalue\tvelocity\terror\t")
	for _, row := range res.rows {
		if row.step%*every != 0 && row.step != len(res.rows) {
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%+.5f\t%+.5f\t%+.5f\t\n",
			row.step, row.at.Milliseconds(), row.value, row.velocity, row.value-res.target)
	}
	w.Flush()

	fmt.Printf("\novershoot %.2f%%  %s\n", res.overshoot*100, settleText(res))
}

func printSummary(opts traceOptions) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "variation\tdamping\tzeta\tovershoot\tsettle\t")
	for _, name := range parameter.Names() {
		opts.variation = parameter.Lookup(name)
		res := runTrace(opts)
		fmt.Fprintf(w, "%s\t%.1f\t%.3f\t%.2f%%\t%s\t\n",
			name, opts.variation.Damping, res.ratio, res.overshoot*100, settleText(res))
	}
	w.Flush()
}

func settleText(res traceResult) string {
	if !res.settled {
		return "not settled"
	}
	if math.Abs(res.target) == 0 {
		return "at rest"
	}
	return fmt.Sprintf("settled (%.0f%% band) at %dms", settleBand*100, res.settle.Milliseconds())
}
