package ibm

import "testing"

func TestVocabulary(t *testing.T) {
	v := NewVocabulary()
	id0 := v.Add("casa")
	id1 := v.Add("azul")
	id2 := v.Add("casa") // duplicate

	if id0 != 0 || id1 != 1 || id2 != 0 {
		t.Errorf("IDs: %d, %d, %d; want 0, 1, 0", id0, id1, id2)
	}
	if v.Size() != 2 {
		t.Errorf("Size = %d, want 2", v.Size())
	}
	if v.Get("missing") != -1 {
		t.Error("Get missing should return -1")
	}
	if v.Word(1) != "azul" {
		t.Errorf("Word(1) = %q, want azul", v.Word(1))
	}
}

func TestTargetVocabularyReservesNull(t *testing.T) {
	v := NewTargetVocabulary()
	if got := v.Get(NullToken); got != NullID {
		t.Errorf("Get(NullToken) = %d, want %d", got, NullID)
	}
	if got := v.Add("house"); got != 1 {
		t.Errorf("first real word ID = %d, want 1", got)
	}
	if got := v.Add(NullToken); got != NullID {
		t.Errorf("Add(NullToken) = %d, want %d", got, NullID)
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		in      string
		want    Model
		wantErr bool
	}{
		{"ibm1", Model1, false},
		{"IBM2", Model2, false},
		{"model1", Model1, false},
		{"2", Model2, false},
		{" ibm1 ", Model1, false},
		{"ibm3", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseModel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseModel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseModel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNullPlacement(t *testing.T) {
	p1 := NewParams(Model1)
	s1 := p1.Encode([]string{"casa"}, []string{"blue", "house"}, true)
	if last := s1.Target[len(s1.Target)-1]; last != NullID {
		t.Errorf("Model 1 last target = %d, want NULL", last)
	}

	p2 := NewParams(Model2)
	s2 := p2.Encode([]string{"casa"}, []string{"blue", "house"}, true)
	if s2.Target[0] != NullID {
		t.Errorf("Model 2 first target = %d, want NULL", s2.Target[0])
	}
	if k := s2.key(0); k != (Key{I: 1, L: 2, M: 1}) {
		t.Errorf("key = %v, want {1 2 1}", k)
	}
}
