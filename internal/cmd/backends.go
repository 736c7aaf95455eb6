package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Alia5/pinput/backend"
)

// Backends lists the registered backends.
type Backends struct{}

// Run is called by Kong when the backends command is executed.
func (c *Backends) Run() error {
	inject, listen := backend.Default(backend.CanInject), backend.Default(backend.CanListen)

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRIORITY\tCAPABILITIES\tDEFAULT")
	for _, name := range backend.List() {
		reg := backend.Get(name)
		var caps, def []string
		if reg.Capabilities()&backend.CanInject != 0 {
			caps = append(caps, "inject")
		}
		if reg.Capabilities()&backend.CanListen != 0 {
			caps = append(caps, "listen")
		}
		if name == inject {
			def = append(def, "inject")
		}
		if name == listen {
			def = append(def, "listen")
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, reg.Priority(), strings.Join(caps, ","), strings.Join(def, ","))
	}
	return w.Flush()
}
