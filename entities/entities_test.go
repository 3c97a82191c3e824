package entities

import "testing"

func TestNewOrder_DerivesLatestStart(t *testing.T) {
	o, err := NewOrder("ord-1", Coordinate{Lat: 1, Lon: 1}, 420, 15, 1, 200,
		NewSkillSet(SkillRegular), None[Gender]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.LatestStartMinute != 480 {
		t.Fatalf("LatestStartMinute = %d, want 480", o.LatestStartMinute)
	}
}

func TestNewOrder_RejectsEmptyID(t *testing.T) {
	_, err := NewOrder("", Coordinate{}, 420, 15, 1, 200, NewSkillSet(SkillRegular), None[Gender]())
	if err != ErrEmptyID {
		t.Fatalf("err = %v, want ErrEmptyID", err)
	}
}

func TestNewOrder_RejectsBadCoordinate(t *testing.T) {
	_, err := NewOrder("ord-1", Coordinate{Lat: 999, Lon: 0}, 420, 15, 1, 200, NewSkillSet(SkillRegular), None[Gender]())
	if err != ErrBadCoordinate {
		t.Fatalf("err = %v, want ErrBadCoordinate", err)
	}
}

func TestNewTechnician_DerivesShiftAndBreak(t *testing.T) {
	tech, err := NewTechnician("tech-1", Coordinate{}, 360, 5, 800, 4.5,
		NewSkillSet(SkillRegular), DefaultSkillRank, GenderMale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tech.ShiftEndMinute != 840 {
		t.Fatalf("ShiftEndMinute = %d, want 840", tech.ShiftEndMinute)
	}
	if tech.BreakStartMinute != 600 {
		t.Fatalf("BreakStartMinute = %d, want 600", tech.BreakStartMinute)
	}
}

func TestExpandImplied_SpecialImpliesAll(t *testing.T) {
	held := NewSkillSet(SkillSpecial)
	expanded := ExpandImplied(held, DefaultSkillRank)
	for _, sk := range []Skill{SkillRegular, SkillPremium, SkillSpecial} {
		if !expanded.Contains(sk) {
			t.Fatalf("expected expanded set to contain %s", sk)
		}
	}
}

func TestExpandImplied_RegularDoesNotImplyPremium(t *testing.T) {
	held := NewSkillSet(SkillRegular)
	expanded := ExpandImplied(held, DefaultSkillRank)
	if expanded.Contains(SkillPremium) || expanded.Contains(SkillSpecial) {
		t.Fatalf("regular must not imply premium/special, got %v", expanded)
	}
}

func TestTechnicianSpanCostCoefficient(t *testing.T) {
	tech, err := NewTechnician("tech-1", Coordinate{}, 360, 5, 900, 4.5,
		NewSkillSet(SkillRegular), DefaultSkillRank, GenderMale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// round(900/4.5) == 200
	if got := tech.SpanCostCoefficient(); got != 200 {
		t.Fatalf("SpanCostCoefficient() = %d, want 200", got)
	}
}

func TestOption_OrElse(t *testing.T) {
	none := None[Gender]()
	if got := none.OrElse(GenderMale); got != GenderMale {
		t.Fatalf("OrElse on None = %v, want GenderMale", got)
	}
	some := Some(GenderFemale)
	if got := some.OrElse(GenderMale); got != GenderFemale {
		t.Fatalf("OrElse on Some = %v, want GenderFemale", got)
	}
}
