// Package render turns engine results and status snapshots into terminal
// text.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/delve/internal/engine"
	"github.com/tatianab/delve/internal/models"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EEEEEE"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F"))
	damageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	combatStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF875F")).Italic(true)
	levelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D787FF")).Bold(true)
	systemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF")).Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)
)

var eventStyles = map[engine.EventKind]lipgloss.Style{
	engine.EventInfo:    infoStyle,
	engine.EventGain:    gainStyle,
	engine.EventDamage:  damageStyle,
	engine.EventCombat:  combatStyle,
	engine.EventWarning: warningStyle,
	engine.EventLevel:   levelStyle,
	engine.EventSystem:  systemStyle,
}

// Event renders one event line.
func Event(ev engine.Event) string {
	style, ok := eventStyles[ev.Kind]
	if !ok {
		style = infoStyle
	}
	return style.Render(ev.Text)
}

// Result renders every event of a command, one per line.
func Result(res engine.Result) string {
	lines := make([]string, 0, len(res.Events))
	for _, ev := range res.Events {
		lines = append(lines, Event(ev))
	}
	return strings.Join(lines, "\n")
}

// Error renders a rejected command.
func Error(err error) string {
	var e *engine.Error
	if errors.As(err, &e) {
		if e.Code == engine.CodeTerminalCondition {
			return systemStyle.Render(e.Message)
		}
		return errorStyle.Render("["+string(e.Code)+"] ") + e.Message
	}
	return errorStyle.Render("error: ") + err.Error()
}

func hpStyle(p *models.PlayerState) lipgloss.Style {
	if p.HP*2 > p.MaxHP {
		return gainStyle
	}
	return damageStyle
}

// Status renders the full status report.
func Status(st engine.Status) string {
	var b strings.Builder
	g := st.Global
	if st.Player == nil {
		b.WriteString(titleStyle.Render("NO ACTIVE RUN") + "\n")
		b.WriteString(labelStyle.Render("use init to start one") + "\n")
	} else {
		p := st.Player
		fmt.Fprintf(&b, "%s  XP %d/%d | LVL %d | %s\n",
			titleStyle.Render(fmt.Sprintf("RUN DEPTH %d", p.Depth)), p.XP, p.XPToNext, p.Level, levelStyle.Render(p.Class))
		fmt.Fprintf(&b, "HP %s | ATK %d | DR %d | DODGE %d%% | CRIT %d%% | KEYS %d\n",
			hpStyle(p).Render(fmt.Sprintf("%d/%d", p.HP, p.MaxHP)), p.Attack, p.DR, p.Dodge, p.Crit, p.Keys)
		fmt.Fprintf(&b, "MEMORY %dB used | %dB holes | %dB cap\n", p.MemUsed, p.Fragmentation, p.MemCapacity)
		fmt.Fprintf(&b, "BUFFER %s\n", itemNames(p.Inventory))
		if st.Room != nil {
			b.WriteString(roomSection(st))
		}
		if c := st.Combat; c != nil {
			fmt.Fprintf(&b, "%s %s %d/%d HP, %d ATK, x%g",
				combatStyle.Render("COMBAT"), c.MobName, c.MobHP, c.MobMaxHP, c.MobAttack, c.Multiplier)
			if c.LockTurns > 0 {
				fmt.Fprintf(&b, ", locked %d", c.LockTurns)
			}
			if c.KeysFed > 0 {
				fmt.Fprintf(&b, ", fed %d", c.KeysFed)
			}
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "GLOBAL XP %d | BASE %dHP/%dATK/%d%%CRIT/%d%%DODGE",
		g.TotalXP, g.BaseHP, g.BaseAttack, g.BaseCrit, g.BaseDodge)
	return b.String()
}

func roomSection(st engine.Status) string {
	r := st.Room
	var b strings.Builder
	header := fmt.Sprintf("SECTOR %s", strings.ToUpper(r.Path))
	if r.Backtrack {
		header += " (re-entry)"
	}
	b.WriteString(titleStyle.Render(header) + "\n")
	if st.RoomDesc != "" {
		b.WriteString(labelStyle.Render(st.RoomDesc) + "\n")
	}
	for _, m := range r.Mobs {
		fmt.Fprintf(&b, "  %s %s (%d HP, %d ATK)\n", damageStyle.Render("mob"), m.ID, m.HP, m.Attack)
	}
	for _, it := range r.Items {
		fmt.Fprintf(&b, "  %s %s (%dB)\n", gainStyle.Render("item"), it.ID, it.Size)
	}
	for _, d := range r.Doors {
		fmt.Fprintf(&b, "  %s %s", systemStyle.Render("door"), d.ID)
		switch {
		case d.Shortcut:
			fmt.Fprintf(&b, " -> %s", d.Target)
		case d.Locked:
			b.WriteString(" [LOCKED]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func itemNames(items []models.Item) string {
	if len(items) == 0 {
		return "(empty)"
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Panel renders the compact status side panel.
func Panel(st engine.Status) string {
	if st.Player == nil {
		return titleStyle.Render("NO RUN") + "\n" + fmt.Sprintf("Global XP: %d\n", st.Global.TotalXP)
	}
	p := st.Player
	var b strings.Builder
	b.WriteString(titleStyle.Render("RUN") + "\n")
	fmt.Fprintf(&b, "Depth: %d\nLevel: %d (%d/%d)\nClass: %s\n\n", p.Depth, p.Level, p.XP, p.XPToNext, p.Class)
	b.WriteString(titleStyle.Render("STATS") + "\n")
	fmt.Fprintf(&b, "HP: %s\nATK: %d  DR: %d\nDodge: %d%%  Crit: %d%%\nKeys: %d\n\n",
		hpStyle(p).Render(fmt.Sprintf("%d/%d", p.HP, p.MaxHP)), p.Attack, p.DR, p.Dodge, p.Crit, p.Keys)
	b.WriteString(titleStyle.Render("MEMORY") + "\n")
	fmt.Fprintf(&b, "%d used / %d holes / %d\n\n", p.MemUsed, p.Fragmentation, p.MemCapacity)
	b.WriteString(titleStyle.Render("INVENTORY") + "\n")
	if len(p.Inventory) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, it := range p.Inventory {
		b.WriteString("- " + it.Name + "\n")
	}
	if c := st.Combat; c != nil {
		b.WriteString("\n" + titleStyle.Render("COMBAT") + "\n")
		fmt.Fprintf(&b, "%s\n%d/%d HP\n", c.MobName, c.MobHP, c.MobMaxHP)
	}
	return b.String()
}
