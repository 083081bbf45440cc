package engine

import (
	"testing"
	"time"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

// scriptedRand replays fixed draws and repeats the last one when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	if v >= n {
		return n - 1
	}
	return v
}

func combatant(name string, t game.ElementType, hp, atk, def, spd int) *game.BattlePokemon {
	return &game.BattlePokemon{
		Name: name, Type: t, Level: 50,
		MaxHP: hp, CurrentHP: hp,
		EffectiveAttack: atk, EffectiveDefense: def, EffectiveSpeed: spd,
		Status: game.StatusNone,
	}
}

func TestDeriveStats_LowerBound(t *testing.T) {
	for _, level := range []int{1, 5, 50, 100} {
		for _, base := range []int{0, 1, 45, 255} {
			s := DeriveStats(game.BaseStats{HP: base, Attack: base, Defense: base, Speed: base}, level)
			if s.HP < level+10 {
				t.Fatalf("hp %d below level+10 for base=%d level=%d", s.HP, base, level)
			}
			if s.Attack < 1 || s.Defense < 1 || s.Speed < 1 {
				t.Fatalf("non-positive stat %+v for base=%d level=%d", s, base, level)
			}
		}
	}
}

func TestDeriveStats_DefaultLevel(t *testing.T) {
	base := game.BaseStats{HP: 45, Attack: 49, Defense: 49, Speed: 45}
	if DeriveStats(base, 0) != DeriveStats(base, DefaultLevel) {
		t.Fatalf("level 0 should behave like level %d", DefaultLevel)
	}
}

func TestEffectiveness_TableIsTotal(t *testing.T) {
	allowed := map[float64]bool{0: true, 0.5: true, 1: true, 2: true}
	for _, a := range game.AllTypes {
		for _, d := range game.AllTypes {
			if e := Effectiveness(a, d); !allowed[e] {
				t.Fatalf("effectiveness %s->%s = %v", a, d, e)
			}
		}
	}
	if e := Effectiveness("plasma", game.Fire); e != 1 {
		t.Fatalf("unknown attacking type should be neutral, got %v", e)
	}
}

func TestEffectiveness_KnownPairs(t *testing.T) {
	cases := []struct {
		atk, def game.ElementType
		want     float64
	}{
		{game.Water, game.Fire, 2},
		{game.Fire, game.Water, 0.5},
		{game.Normal, game.Ghost, 0},
		{game.Electric, game.Ground, 0},
		{game.Grass, game.Ground, 2},
		{game.Dragon, game.Fairy, 0},
		{game.Normal, game.Normal, 1},
	}
	for _, c := range cases {
		if got := Effectiveness(c.atk, c.def); got != c.want {
			t.Fatalf("%s->%s: want %v got %v", c.atk, c.def, c.want, got)
		}
	}
}

func TestWeatherMultiplier_Range(t *testing.T) {
	conds := []string{WeatherSunny, WeatherRain, WeatherSandstorm, WeatherSnow, WeatherFog, WeatherThunderstorm, WeatherWindy, "", "unknown"}
	for _, typ := range game.AllTypes {
		for _, c := range conds {
			m := WeatherMultiplier(typ, c)
			if m < 0.5 || m > 1.5 {
				t.Fatalf("multiplier %v for %s in %q out of range", m, typ, c)
			}
		}
	}
	if m := WeatherMultiplier(game.Fire, "acid rain"); m != 1 {
		t.Fatalf("unknown weather should be neutral, got %v", m)
	}
	if WeatherMultiplier(game.Fire, WeatherSunny) <= 1 {
		t.Fatalf("fire should be boosted by sun")
	}
}

func TestMoveWeatherBonus(t *testing.T) {
	if MoveWeatherBonus(game.Fire, "sun") != 1.5 || MoveWeatherBonus(game.Water, WeatherSunny) != 0.5 {
		t.Fatalf("unexpected sun bonuses")
	}
	if MoveWeatherBonus(game.Water, WeatherRain) != 1.5 || MoveWeatherBonus(game.Fire, WeatherRain) != 0.5 {
		t.Fatalf("unexpected rain bonuses")
	}
	if MoveWeatherBonus(game.Grass, WeatherRain) != 1 {
		t.Fatalf("grass should be unaffected")
	}
}

func TestTimeBonus(t *testing.T) {
	day := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	night := time.Date(2024, 1, 1, 18, 0, 0, 0, time.Local)
	if TimeBonus(day) != 1.1 {
		t.Fatalf("expected day bonus")
	}
	if TimeBonus(night) != 0.95 {
		t.Fatalf("18:00 should already be night")
	}
}

func TestWeather_TicksDown(t *testing.T) {
	w := NewWeather("sand", 2)
	if w.Condition != WeatherSandstorm || w.Turns != 2 {
		t.Fatalf("unexpected weather %+v", w)
	}
	w = tickWeather(tickWeather(w))
	if w.Active() {
		t.Fatalf("weather should clear after its duration, got %+v", w)
	}
	if NewWeather("clear", 0).Active() {
		t.Fatalf("clear should not be an active weather")
	}
}

func TestResolve_ReferenceDamageRange(t *testing.T) {
	move := game.PokemonMove{Name: "tackle", Type: game.Normal, Power: 40, Accuracy: 100, Category: game.CategoryPhysical}
	for variance, want := range map[int]int{0: 16, 15: 19} {
		att := combatant("squirtle", game.Water, 100, 100, 100, 0)
		def := combatant("rattata", game.Normal, 100, 100, 100, 0)
		rng := &scriptedRand{floats: []float64{0.5, 0.99}, ints: []int{variance}}
		a := NewResolver(rng).Resolve(att, def, move, 1, game.WeatherState{})
		if !a.Accuracy || a.IsCritical || a.STAB {
			t.Fatalf("unexpected modifiers: %+v", a)
		}
		if a.Damage != want {
			t.Fatalf("variance %d: want %d damage, got %d", variance, want, a.Damage)
		}
		if def.CurrentHP != 100 {
			t.Fatalf("resolve must not mutate the defender")
		}
		if a.RemainingHP != 100-want {
			t.Fatalf("remaining hp %d", a.RemainingHP)
		}
	}
}

func TestResolve_MissLeavesHP(t *testing.T) {
	move := game.PokemonMove{Name: "hydro-pump", Type: game.Water, Power: 110, Accuracy: 50}
	att := combatant("squirtle", game.Water, 100, 100, 100, 50)
	def := combatant("charmander", game.Fire, 80, 100, 100, 50)
	def.CurrentHP = 37
	a := NewResolver(&scriptedRand{floats: []float64{0.9}}).Resolve(att, def, move, 3, game.WeatherState{})
	if a.Accuracy || a.Damage != 0 {
		t.Fatalf("expected a miss, got %+v", a)
	}
	if a.RemainingHP != 37 || a.IsKO {
		t.Fatalf("miss should leave remaining hp at 37, got %d", a.RemainingHP)
	}
}

func TestResolve_CategoryHasNoEffect(t *testing.T) {
	physical := game.PokemonMove{Name: "strike", Type: game.Fighting, Power: 70, Accuracy: 100, Category: game.CategoryPhysical}
	special := physical
	special.Category = game.CategorySpecial
	run := func(m game.PokemonMove) int {
		att := combatant("a", game.Normal, 120, 90, 80, 10)
		def := combatant("b", game.Normal, 120, 70, 60, 10)
		rng := &scriptedRand{floats: []float64{0.1, 0.9}, ints: []int{7}}
		return NewResolver(rng).Resolve(att, def, m, 1, game.WeatherState{}).Damage
	}
	if run(physical) != run(special) {
		t.Fatalf("physical and special moves should currently deal identical damage")
	}
}

func TestResolve_MinimumDamageAndModifiers(t *testing.T) {
	move := game.PokemonMove{Name: "ember", Type: game.Fire, Power: 40, Accuracy: 100}
	att := combatant("charmander", game.Fire, 100, 1, 100, 255)
	def := combatant("squirtle", game.Water, 100, 100, 500, 10)
	rng := &scriptedRand{floats: []float64{0, 0}, ints: []int{0}}
	a := NewResolver(rng).Resolve(att, def, move, 1, NewWeather(WeatherRain, 0))
	if a.Damage < 1 {
		t.Fatalf("hits always deal at least 1 damage, got %d", a.Damage)
	}
	if !a.STAB || !a.IsCritical || a.TypeEffectiveness != 0.5 || a.WeatherBonus != 0.5 {
		t.Fatalf("unexpected modifiers %+v", a)
	}
}

func TestPlayTurn_FasterActsFirst(t *testing.T) {
	st := NewBattleState(BattleSetup{
		BattleID: "b1",
		Team1:    []game.RosterEntry{{PokemonID: 1, Name: "slowbro", Type: game.Water, Level: 50, Base: game.BaseStats{HP: 95, Attack: 75, Defense: 110, Speed: 30}}},
		Team2:    []game.RosterEntry{{PokemonID: 2, Name: "jolteon", Type: game.Electric, Level: 50, Base: game.BaseStats{HP: 65, Attack: 65, Defense: 60, Speed: 130}}},
	})
	rng := NewRand(7)
	PlayTurn(st, NewResolver(rng), func(game.Side, *game.BattlePokemon) game.PokemonMove { return Tackle })
	if len(st.Actions) == 0 {
		t.Fatalf("expected logged actions")
	}
	if st.Actions[0].Attacker.Team != game.Team2 {
		t.Fatalf("faster team2 should act first, got %s", st.Actions[0].Attacker.Team)
	}
}

func TestTurnOrder_TieFavorsTeam1(t *testing.T) {
	st := &game.BattleState{
		Team1: []game.BattlePokemon{*combatant("a", game.Normal, 10, 10, 10, 50)},
		Team2: []game.BattlePokemon{*combatant("b", game.Normal, 10, 10, 10, 50)},
	}
	if first, _ := TurnOrder(st); first != game.Team1 {
		t.Fatalf("team1 should win speed ties")
	}
}

func TestExecuteAttack_SwitchesOnKO(t *testing.T) {
	st := &game.BattleState{
		Turn:    1,
		Phase:   game.PhaseBattle,
		Team1:   []game.BattlePokemon{*combatant("a", game.Normal, 100, 200, 100, 50)},
		Team2:   []game.BattlePokemon{*combatant("b", game.Normal, 1, 10, 10, 10), *combatant("c", game.Normal, 50, 10, 10, 10)},
		Actions: []game.TurnAction{},
	}
	rng := &scriptedRand{floats: []float64{0, 0.99}, ints: []int{0}}
	if _, ok := ExecuteAttack(st, NewResolver(rng), game.Team1, Tackle); !ok {
		t.Fatalf("expected the attack to happen")
	}
	if !st.Team2[0].IsKO || st.Team2[0].CurrentHP != 0 {
		t.Fatalf("defender should be knocked out")
	}
	if st.Active2 != 1 {
		t.Fatalf("expected switch to roster index 1, got %d", st.Active2)
	}
	if last := st.Actions[len(st.Actions)-1]; last.Phase != game.ActionSwitch {
		t.Fatalf("expected a switch action, got %s", last.Phase)
	}
}

func TestSandstormDamage(t *testing.T) {
	st := &game.BattleState{
		Turn:    1,
		Weather: NewWeather(WeatherSandstorm, 0),
		Team1:   []game.BattlePokemon{*combatant("geodude", game.Rock, 64, 10, 10, 10)},
		Team2:   []game.BattlePokemon{*combatant("pikachu", game.Electric, 64, 10, 10, 10)},
	}
	ApplyEndOfTurnWeather(st)
	if st.Team1[0].CurrentHP != 64 {
		t.Fatalf("rock types are immune to sandstorm")
	}
	if st.Team2[0].CurrentHP != 60 {
		t.Fatalf("expected floor(64/16)=4 damage, hp=%d", st.Team2[0].CurrentHP)
	}
	if len(st.Actions) != 1 || st.Actions[0].Phase != game.ActionWeatherDamage {
		t.Fatalf("expected one weather damage action, got %+v", st.Actions)
	}
}

type fixedMoves map[uint][]game.PokemonMove

func (f fixedMoves) MovesFor(id uint) []game.PokemonMove { return f[id] }

func TestSimulate_TerminatesWithWinner(t *testing.T) {
	roster := func(offset uint) []game.RosterEntry {
		return []game.RosterEntry{
			{PokemonID: offset + 1, Name: "bulbasaur", Type: game.Grass, Base: game.BaseStats{HP: 45, Attack: 49, Defense: 49, Speed: 45}},
			{PokemonID: offset + 2, Name: "charmander", Type: game.Fire, Base: game.BaseStats{HP: 39, Attack: 52, Defense: 43, Speed: 65}},
		}
	}
	moves := fixedMoves{1: {{Name: "vine-whip", Type: game.Grass, Power: 45, Accuracy: 100}}}
	for seed := int64(1); seed <= 20; seed++ {
		st := Simulate(SimulateInput{
			BattleSetup: BattleSetup{BattleID: "sim", Team1: roster(0), Team2: roster(10), Weather: WeatherSandstorm},
			MaxTurns:    50,
		}, moves, NewRand(seed))
		if st.Winner == game.WinnerNone || st.Winner == "" {
			t.Fatalf("seed %d: expected a winner", seed)
		}
		if st.Phase != game.PhaseFinished {
			t.Fatalf("seed %d: expected finished phase", seed)
		}
		if st.Turn > 50 {
			t.Fatalf("seed %d: ran past max turns (%d)", seed, st.Turn)
		}
	}
}

func TestSimulate_EmptyRosterIsDraw(t *testing.T) {
	st := Simulate(SimulateInput{}, nil, NewRand(1))
	if st.Winner != game.WinnerDraw {
		t.Fatalf("expected draw for empty rosters, got %s", st.Winner)
	}
}

func TestSimulate_MaxTurnsIsDraw(t *testing.T) {
	wall := []game.RosterEntry{{PokemonID: 1, Name: "shuckle", Type: game.Bug, Base: game.BaseStats{HP: 255, Attack: 1, Defense: 255, Speed: 5}}}
	miss := fixedMoves{1: {{Name: "sing", Type: game.Normal, Power: 0, Accuracy: 0}}}
	st := Simulate(SimulateInput{
		BattleSetup: BattleSetup{Team1: wall, Team2: wall},
		MaxTurns:    3,
	}, miss, &scriptedRand{floats: []float64{0.5}})
	if st.Winner != game.WinnerDraw {
		t.Fatalf("expected draw after max turns, got %s", st.Winner)
	}
}
