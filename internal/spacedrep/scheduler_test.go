package spacedrep

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/quizmind/internal/attempt"
)

var day0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func at(topic string, score, total int, ts time.Time) attempt.Record {
	return attempt.Record{Topic: topic, Score: score, TotalQuestions: total, Timestamp: ts}
}

func TestFold_SuccessProgression(t *testing.T) {
	history := []attempt.Record{
		at("Go", 5, 5, day0),
		at("Go", 5, 5, day0.AddDate(0, 0, 1)),
		at("Go", 5, 5, day0.AddDate(0, 0, 7)),
	}

	var intervals []int
	for i := range history {
		st := Fold(history[:i+1]).Get("Go")
		intervals = append(intervals, st.Interval)
	}

	ef := InitialEasiness + 0.1 + 0.1
	want := []int{1, 6, int(math.Round(6 * ef))}
	for i := range want {
		if intervals[i] != want[i] {
			t.Errorf("interval[%d] = %d, want %d", i, intervals[i], want[i])
		}
	}
	if want[2] != 16 {
		t.Errorf("third interval = %d, want 16", want[2])
	}

	st := Fold(history).Get("Go")
	if st.Repetitions != 3 {
		t.Errorf("Repetitions = %d, want 3", st.Repetitions)
	}
	if st.LastReviewEpoch != day0.AddDate(0, 0, 7).Unix() {
		t.Errorf("LastReviewEpoch = %d, want latest attempt", st.LastReviewEpoch)
	}
}

func TestFold_FailureResets(t *testing.T) {
	history := []attempt.Record{
		at("Go", 5, 5, day0),
		at("Go", 5, 5, day0.AddDate(0, 0, 1)),
		at("Go", 1, 5, day0.AddDate(0, 0, 2)),
		at("Go", 0, 5, day0.AddDate(0, 0, 3)),
	}
	st := Fold(history).Get("Go")
	if st.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", st.Repetitions)
	}
	if st.Interval != 1 {
		t.Errorf("Interval = %d, want 1", st.Interval)
	}
	// Failures leave the easiness factor where the successes put it.
	if math.Abs(st.EasinessFactor-2.7) > 1e-9 {
		t.Errorf("EasinessFactor = %f, want 2.7", st.EasinessFactor)
	}
}

func TestFold_EasinessFloor(t *testing.T) {
	var history []attempt.Record
	for i := 0; i < 20; i++ {
		history = append(history, at("Go", 3, 5, day0.AddDate(0, 0, i)))
	}
	st := Fold(history).Get("Go")
	if st.EasinessFactor != MinEasiness {
		t.Errorf("EasinessFactor = %f, want %f", st.EasinessFactor, MinEasiness)
	}
}

func TestFold_ZeroQuestionsIsFailure(t *testing.T) {
	st := Fold([]attempt.Record{at("Go", 0, 0, day0)}).Get("Go")
	if st.Repetitions != 0 || st.Interval != 1 {
		t.Errorf("got repetitions=%d interval=%d, want 0 and 1", st.Repetitions, st.Interval)
	}
	if st.EasinessFactor != InitialEasiness {
		t.Errorf("EasinessFactor = %f, want %f", st.EasinessFactor, InitialEasiness)
	}
}

func TestFold_FirstSeenOrder(t *testing.T) {
	history := []attempt.Record{
		at("Maps", 5, 5, day0),
		at("Channels", 2, 5, day0.Add(time.Hour)),
		at("Maps", 5, 5, day0.Add(2*time.Hour)),
		at("Generics", 4, 5, day0.Add(3*time.Hour)),
	}
	states := Fold(history)
	if states.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", states.Len())
	}
	want := []string{"Maps", "Channels", "Generics"}
	for i, st := range states.All() {
		if st.Topic != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, st.Topic, want[i])
		}
	}
	if states.Get("Unknown") != nil {
		t.Error("expected nil state for unseen topic")
	}
}

func TestDueReviews_Empty(t *testing.T) {
	got := DueReviews(nil, day0)
	if got == nil || len(got) != 0 {
		t.Errorf("DueReviews(nil) = %v, want empty slice", got)
	}
}

func TestDueReviews_FirstSeenOrderAndFilter(t *testing.T) {
	history := []attempt.Record{
		at("Maps", 5, 5, day0),                      // interval 1, due day 1
		at("Channels", 5, 5, day0),                  // interval 1 then 6
		at("Channels", 5, 5, day0.AddDate(0, 0, 1)), // due day 7
		at("Generics", 1, 5, day0),                  // failed, due day 1
	}
	now := day0.AddDate(0, 0, 3)

	got := DueReviews(history, now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (%v)", len(got), got)
	}
	if got[0].Topic != "Maps" || got[1].Topic != "Generics" {
		t.Errorf("topics = %q, %q; want Maps, Generics", got[0].Topic, got[1].Topic)
	}
	if got[0].DueInDays != -2 {
		t.Errorf("Maps DueInDays = %d, want -2", got[0].DueInDays)
	}
	if got[0].Interval != 1 {
		t.Errorf("Maps Interval = %d, want 1", got[0].Interval)
	}
}

func TestDueReviewsAt_MatchesTimeForm(t *testing.T) {
	history := []attempt.Record{at("Maps", 5, 5, day0)}
	now := day0.AddDate(0, 0, 2)
	a := DueReviews(history, now)
	b := DueReviewsAt(history, now.Unix())
	if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
		t.Errorf("DueReviews = %v, DueReviewsAt = %v", a, b)
	}
}
