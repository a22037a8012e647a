package autoplay

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/delve/internal/command"
	"github.com/tatianab/delve/internal/engine"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// contentGenerator is the part of *genai.GenerativeModel the strategist uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini asks a Gemini model for each command and falls back to another
// strategist whenever the model fails or answers with something unusable.
type Gemini struct {
	model    contentGenerator
	client   *genai.Client
	fallback Strategist
	log      *zap.Logger
}

// NewGemini connects to the Gemini API.
func NewGemini(ctx context.Context, apiKey, modelName string, fallback Strategist, log *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	return &Gemini{model: model, client: client, fallback: fallback, log: log}, nil
}

// Close releases the API client.
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Next asks the model for one command.
func (g *Gemini) Next(ctx context.Context, st engine.Status) ([]string, error) {
	if st.Player == nil {
		return []string{"init"}, nil
	}
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt(st)))
	if err != nil {
		g.log.Warn("gemini request failed, using fallback", zap.Error(err))
		return g.fallback.Next(ctx, st)
	}
	args, ok := parseReply(resp)
	if !ok {
		g.log.Warn("unusable gemini reply, using fallback")
		return g.fallback.Next(ctx, st)
	}
	g.log.Debug("gemini move", zap.Strings("args", args))
	return args, nil
}

// parseReply takes the first line of the first candidate that names a known
// command.
func parseReply(resp *genai.GenerateContentResponse) ([]string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, false
	}
	c := resp.Candidates[0]
	if c.Content == nil || len(c.Content.Parts) == 0 {
		return nil, false
	}
	text := strings.TrimSpace(fmt.Sprintf("%v", c.Content.Parts[0]))
	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`>$ ")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "delve" {
			fields = fields[1:]
		}
		if len(fields) == 0 {
			continue
		}
		if def, ok := command.Lookup(fields[0]); ok && def.Name != "init" {
			return fields, true
		}
	}
	return nil, false
}

func prompt(st engine.Status) string {
	var b strings.Builder
	b.WriteString("You are playing a terminal dungeon crawler. Reach depth 100 and defeat the Key Devourer.\n\n")
	b.WriteString("Commands:\n")
	b.WriteString(command.Help())
	b.WriteString("\nCurrent state:\n")
	b.WriteString(Describe(st))
	b.WriteString("\nReply with exactly one command line and nothing else.")
	return b.String()
}

// Describe renders a plain-text account of st.
func Describe(st engine.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "global xp %d\n", st.Global.TotalXP)
	p := st.Player
	if p == nil {
		b.WriteString("no active run\n")
		return b.String()
	}
	fmt.Fprintf(&b, "depth %d, hp %d/%d, atk %d, dr %d, crit %d%%, dodge %d%%, keys %d\n",
		p.Depth, p.HP, p.MaxHP, p.Attack, p.DR, p.Crit, p.Dodge, p.Keys)
	fmt.Fprintf(&b, "level %d, xp %d/%d, memory %d used, %d fragmented of %d\n",
		p.Level, p.XP, p.XPToNext, p.MemUsed, p.Fragmentation, p.MemCapacity)
	for _, it := range p.Inventory {
		fmt.Fprintf(&b, "inventory: %s (%s, %s)\n", it.ID, it.Name, it.Kind)
	}
	if c := st.Combat; c != nil {
		fmt.Fprintf(&b, "in combat with %s: hp %d/%d, atk %d, lock turns %d, keys fed %d\n",
			c.MobName, c.MobHP, c.MobMaxHP, c.MobAttack, c.LockTurns, c.KeysFed)
	}
	if r := st.Room; r != nil {
		for _, m := range r.Mobs {
			fmt.Fprintf(&b, "mob: %s hp %d atk %d\n", m.ID, m.HP, m.Attack)
		}
		for _, it := range r.Items {
			fmt.Fprintf(&b, "item: %s size %d\n", it.ID, it.Size)
		}
		for _, d := range r.Doors {
			state := ""
			if d.Locked {
				state = " (locked)"
			}
			fmt.Fprintf(&b, "door: %s to %s%s\n", d.ID, d.LeadsTo, state)
		}
	}
	return b.String()
}
