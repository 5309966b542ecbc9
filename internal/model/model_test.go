package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTimestampMarshal(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := NewTimestamp(time.Date(2024, 5, 1, 21, 30, 15, 987654321, loc))

	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `"2024-05-01T18:30:15Z"`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Time.Equal(ts.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", back.Time, ts.Time)
	}
	if back.String() != ts.String() {
		t.Fatalf("round trip string mismatch: %s vs %s", back, ts)
	}
}

func TestTimestampScan(t *testing.T) {
	var ts Timestamp
	if err := ts.Scan(time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if ts.String() != "2024-01-02T03:04:05Z" {
		t.Fatalf("unexpected value %s", ts)
	}
	if err := ts.Scan("not a time"); err == nil {
		t.Fatal("expected error scanning a string")
	}
}

func TestReservationJSON(t *testing.T) {
	r := Reservation{
		ID:        7,
		CreatedAt: NewTimestamp(time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)),
		UserID:    3,
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":7,"created_at":"2025-02-03T04:05:06Z","user":3}`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}
}

func TestUserJSONOmitsPassword(t *testing.T) {
	u := User{ID: 1, Username: "newuser", PasswordHash: "$2a$10$secret"}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "password") || strings.Contains(string(b), "secret") {
		t.Fatalf("password leaked: %s", b)
	}
}

func TestInputApplyPartial(t *testing.T) {
	h := TheatreHall{ID: 1, Name: "Main Hall", Rows: 10, SeatsInRow: 15}
	var in TheatreHallInput
	if err := json.Unmarshal([]byte(`{"rows":12}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	in.Apply(&h)
	if h.Name != "Main Hall" || h.Rows != 12 || h.SeatsInRow != 15 {
		t.Fatalf("unexpected hall after apply: %+v", h)
	}
	if h.Capacity() != 180 {
		t.Fatalf("expected capacity 180, got %d", h.Capacity())
	}
}

func TestPerformanceInputNormalizesToUTC(t *testing.T) {
	var in PerformanceInput
	if err := json.Unmarshal([]byte(`{"play":1,"theatre_hall":2,"show_time":"2024-06-01T20:00:00+02:00"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var p Performance
	in.Apply(&p)
	if p.PlayID != 1 || p.TheatreHallID != 2 {
		t.Fatalf("unexpected ids: %+v", p)
	}
	if p.ShowTime.Location() != time.UTC || p.ShowTime.Hour() != 18 {
		t.Fatalf("expected 18:00 UTC, got %v", p.ShowTime)
	}
}

func TestPerformanceInputDropsSubSeconds(t *testing.T) {
	at := time.Date(2025, 6, 1, 20, 0, 0, 600_000_000, time.FixedZone("UTC+2", 2*60*60))
	var p Performance
	PerformanceInput{ShowTime: &at}.Apply(&p)

	want := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	if !p.ShowTime.Equal(want) || p.ShowTime.Location() != time.UTC {
		t.Fatalf("expected %v, got %v", want, p.ShowTime)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"show_time":"2025-06-01T18:00:00Z"`) {
		t.Fatalf("unexpected rendering %s", b)
	}
}

func TestInputsTrimText(t *testing.T) {
	name, title, desc := "  Drama ", "\tHamlet ", " A prince.\n"
	var g Genre
	GenreInput{Name: &name}.Apply(&g)
	var p Play
	PlayInput{Title: &title, Description: &desc}.Apply(&p)
	if g.Name != "Drama" || p.Title != "Hamlet" || p.Description != "A prince." {
		t.Fatalf("text not trimmed: %+v %+v", g, p)
	}

	user := " ivy "
	var u User
	UserInput{Username: &user}.Apply(&u)
	if u.Username != "ivy" {
		t.Fatalf("username not trimmed: %q", u.Username)
	}
}
