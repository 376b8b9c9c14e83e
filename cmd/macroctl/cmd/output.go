package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/effects"
)

func printEntity(w io.Writer, e *entity.Entity) {
	fmt.Fprintf(w, "%s (%s) owned by %s\n", e.Name, e.ID, e.OwnerID)
	for name, value := range e.Attributes {
		fmt.Fprintf(w, "  %-12s %d\n", name, value)
	}
	if len(e.Effects) == 0 {
		return
	}
	fmt.Fprintln(w, "Effects:")
	for _, eff := range e.Effects {
		fmt.Fprintf(w, "  %s\n", describeEffect(eff))
	}
}

func describeEffect(eff *entity.Effect) string {
	var b strings.Builder
	b.WriteString(eff.Name)
	if eff.Counter > 0 {
		fmt.Fprintf(&b, " x%d", eff.Counter)
	}
	for k, v := range eff.Bonuses {
		fmt.Fprintf(&b, " %s%+d", k, v)
	}
	fmt.Fprintf(&b, " [%s]", eff.ID)
	return b.String()
}

func printOutcome(w io.Writer, label string, o *effects.Outcome) {
	if o == nil {
		return
	}
	if o.Effect == nil {
		fmt.Fprintf(w, "%s: %s on %s\n", label, o.Action, o.EntityID)
		return
	}
	fmt.Fprintf(w, "%s: %s %s on %s\n", label, o.Action, describeEffect(o.Effect), o.EntityID)
}

func printPaired(w io.Writer, p *effects.PairedOutcome) {
	printOutcome(w, "instance", p.Instance)
	printOutcome(w, "aggregate", p.Aggregate)
	if p.Warning != nil {
		fmt.Fprintf(w, "warning: %v\n", p.Warning)
	}
}
