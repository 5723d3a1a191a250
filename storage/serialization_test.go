package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/poiesic/scout/core"
)

func TestSearchRecordRoundTrip(t *testing.T) {
	record := &core.SearchRecord{
		Id:         core.ID(42),
		Query:      "réchauffement climatique",
		SearchType: "text",
		Source:     "cli",
		Filters: core.FilterCriteria{
			Date:     core.DateWeek,
			Type:     core.ContentArticle,
			Domain:   "wikipedia.org",
			Language: "fr",
			Category: "science",
		},
		Timestamp:   time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
		ResultCount: 9,
	}

	data, err := MarshalSearchRecord(record)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	got, err := UnmarshalSearchRecord(data)
	if err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if *got != *record {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", got, record)
	}
}

func TestUnmarshalSearchRecordMalformed(t *testing.T) {
	_, err := UnmarshalSearchRecord([]byte("not json"))
	if !errors.Is(err, ErrSerializationFailed) {
		t.Fatalf("Expected ErrSerializationFailed, got %v", err)
	}
}

func TestIDRoundTripPreservesOrder(t *testing.T) {
	a := MarshalID(core.ID(5))
	b := MarshalID(core.ID(1 << 40))
	if string(a) >= string(b) {
		t.Error("BigEndian encoding must sort like the numeric values")
	}

	id, err := UnmarshalID(b)
	if err != nil {
		t.Fatalf("Failed to unmarshal ID: %v", err)
	}
	if id != core.ID(1<<40) {
		t.Errorf("Expected %d, got %d", uint64(1)<<40, id)
	}
}

func TestUnmarshalIDTruncated(t *testing.T) {
	if _, err := UnmarshalID([]byte{1, 2, 3}); !errors.Is(err, ErrTruncatedData) {
		t.Fatalf("Expected ErrTruncatedData, got %v", err)
	}
}
