package activity

import (
	"testing"
)

func TestPropertiesEnvelopeKeyedByType(t *testing.T) {
	props := MovedProperties("todo", "done")

	raw, err := props.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var decoded Properties
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if decoded.Created != nil || decoded.Updated != nil {
		t.Error("unrelated envelope keys must stay nil")
	}
	if decoded.Moved == nil {
		t.Fatal("moved payload lost in round trip")
	}
	if decoded.Moved.From != "todo" || decoded.Moved.To != "done" {
		t.Errorf("moved payload = %+v", decoded.Moved)
	}
}

func TestPropertiesScanNullColumn(t *testing.T) {
	p := MovedProperties("todo", "done")
	if err := p.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if p.Created != nil || p.Moved != nil || p.Updated != nil {
		t.Errorf("null column should reset the envelope, got %+v", p)
	}
}

func TestUpdatedPropertiesOmitUnchangedFields(t *testing.T) {
	title := "New title"
	props := UpdatedProperties(UpdatedPayload{Title: &title})

	raw, err := props.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	got := string(raw.([]byte))
	want := `{"updated":{"title":"New title"}}`
	if got != want {
		t.Errorf("serialized properties = %s, want %s", got, want)
	}
}
