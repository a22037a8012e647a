package engine

import (
	"testing"

	"github.com/tatianab/delve/internal/models"
)

func TestLevelUpOnce(t *testing.T) {
	p := models.DefaultPlayer()
	p.XP, p.XPToNext = 450, 200
	p.Attack, p.HP, p.MaxHP, p.Dodge = 5, 50, 50, 15

	if !LevelUpOnce(&p) {
		t.Fatal("no level-up at 450/200")
	}
	if p.Level != 2 || p.XP != 250 || p.XPToNext != 300 {
		t.Errorf("after one step: lvl %d xp %d next %d; want 2/250/300", p.Level, p.XP, p.XPToNext)
	}
	if p.Attack != 8 || p.MaxHP != 70 || p.HP != 70 || p.Dodge != 17 {
		t.Errorf("bumps: atk %d hp %d/%d dodge %d", p.Attack, p.HP, p.MaxHP, p.Dodge)
	}
	if LevelUpOnce(&p) {
		t.Error("leveled with 250/300")
	}
}

func TestCheckLevelUpLoopsUntilShort(t *testing.T) {
	p := models.DefaultPlayer()
	p.XP, p.XPToNext = 500, 200

	if n := CheckLevelUp(&p); n != 2 {
		t.Fatalf("levels gained = %d; want 2", n)
	}
	if p.Level != 3 || p.XP != 0 || p.XPToNext != 450 {
		t.Errorf("lvl %d xp %d next %d; want 3/0/450", p.Level, p.XP, p.XPToNext)
	}
}

func TestLevelUpCapsDodge(t *testing.T) {
	p := models.DefaultPlayer()
	p.XP, p.Dodge = 200, 74
	LevelUpOnce(&p)
	if p.Dodge != 75 {
		t.Errorf("dodge = %d; want 75", p.Dodge)
	}
}

func TestDeriveClass(t *testing.T) {
	cases := []struct {
		name string
		p    models.PlayerState
		want string
	}{
		{"novice", models.PlayerState{MaxHP: 50, Attack: 5, Dodge: 15, Crit: 10}, ClassNovice},
		{"tank by dr", models.PlayerState{DR: 5, Dodge: 60}, ClassTank},
		{"tank by hp", models.PlayerState{MaxHP: 201, Attack: 90}, ClassTank},
		{"rogue by dodge", models.PlayerState{Dodge: 41, Attack: 90}, ClassRogue},
		{"rogue by crit", models.PlayerState{Crit: 26}, ClassRogue},
		{"dps", models.PlayerState{Attack: 41, MaxHP: 200}, ClassDPS},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveClass(tc.p); got != tc.want {
				t.Errorf("DeriveClass = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestParseOpcode(t *testing.T) {
	for _, s := range []string{"mov", " NOP ", "Add", "xor", "LOCK"} {
		if _, ok := ParseOpcode(s); !ok {
			t.Errorf("ParseOpcode(%q) rejected", s)
		}
	}
	if _, ok := ParseOpcode("HALT"); ok {
		t.Error("HALT accepted")
	}
}

func TestErrorsMatchByCode(t *testing.T) {
	err := insufficient("XP", 10, 50)
	if err.Metadata["need"] != "50" {
		t.Errorf("metadata = %v", err.Metadata)
	}
	if code, ok := CodeOf(err); !ok || code != CodeInsufficientResource {
		t.Errorf("CodeOf = %v, %v", code, ok)
	}
	if err.Is(ErrInvalidReference) {
		t.Error("codes crossed")
	}
}
