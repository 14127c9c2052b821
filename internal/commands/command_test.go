package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/done empty the litter box by Ann", TypeDone},
		{"add water the plants every 3 for Bo", TypeAdd},
		{"walk Ann", TypeWalk},
		{"feed morning", TypeFeed},
		{"points Bo +1", TypePoints},
		{"/reset", TypeReset},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseDoneSplitsOnBy(t *testing.T) {
	cmd, err := Parse("done empty the litter box by Ann")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Done.Task != "empty the litter box" || cmd.Done.Actor != "Ann" {
		t.Fatalf("unexpected args: %+v", cmd.Done)
	}

	if _, err := Parse("done by Ann"); err == nil {
		t.Fatal("done without a task name should fail")
	}
	if _, err := Parse("done dishes by"); err == nil {
		t.Fatal("done without a person should fail")
	}
}

func TestParseAddOptions(t *testing.T) {
	cmd, err := Parse("add water the plants every 3 for Bo")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Name != "water the plants" || cmd.Add.Days != 3 || cmd.Add.Assignee != "Bo" {
		t.Fatalf("unexpected args: %+v", cmd.Add)
	}

	cmd, err = Parse("add laundry")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Days != 0 || cmd.Add.Assignee != "" {
		t.Fatalf("options should default to zero values: %+v", cmd.Add)
	}

	if _, err := Parse("add laundry every zero"); err == nil {
		t.Fatal("non-numeric day count should fail")
	}
	if _, err := Parse("add every 3"); err == nil {
		t.Fatal("add without a name should fail")
	}
}

func TestParsePoints(t *testing.T) {
	cmd, err := Parse("points Bo -1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Points.Member != "Bo" || cmd.Points.Delta != -1 {
		t.Fatalf("unexpected args: %+v", cmd.Points)
	}

	if _, err := Parse("points Bo +2"); err == nil {
		t.Fatal("only +1/-1 adjustments are allowed")
	}
}

func TestParseFeedSlots(t *testing.T) {
	if _, err := Parse("feed brunch"); err == nil {
		t.Fatal("unknown slot should fail")
	}
	cmd, err := Parse("feed Evening")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Feed.Slot != "evening" {
		t.Fatalf("slot not normalized: %q", cmd.Feed.Slot)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/frobnicate now")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("walk Ann")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Walk: func(a WalkArgs) (Result, error) {
			called = true
			if a.Actor != "Ann" {
				t.Fatalf("unexpected actor: %q", a.Actor)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("feed morning")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler missing error, got %v", err)
	}
}
