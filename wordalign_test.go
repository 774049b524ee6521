package wordalign

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/happyhackingspace/wordalign/ibm"
)

const (
	sourceText = "casa azul\ncasa verde\nflor azul\n"
	targetText = "blue house\ngreen house\nblue flower\n"
)

func writeCorpus(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "corpus.es")
	tgt := filepath.Join(dir, "corpus.en")
	if err := os.WriteFile(src, []byte(sourceText), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tgt, []byte(targetText), 0644); err != nil {
		t.Fatal(err)
	}
	return src, tgt
}

func TestTrainAlignModel1(t *testing.T) {
	src, tgt := writeCorpus(t)
	a, err := Train(src, tgt, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.Model() != ibm.Model1 {
		t.Errorf("Model = %v, want ibm1", a.Model())
	}

	links, err := a.AlignSentence("casa azul", "blue house")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatLinks(links); got != "1-2 2-1" {
		t.Errorf("links = %s, want 1-2 2-1", got)
	}

	var out bytes.Buffer
	if err := a.AlignFiles(src, tgt, &out); err != nil {
		t.Fatal(err)
	}
	want := "1 2 1\n1 1 2\n2 2 1\n2 1 2\n3 2 1\n3 1 2\n"
	if out.String() != want {
		t.Errorf("AlignFiles output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src, tgt := writeCorpus(t)
	for _, model := range []ibm.Model{ibm.Model1, ibm.Model2} {
		a, err := Train(src, tgt, &TrainConfig{Model: model, Rounds: 5})
		if err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(t.TempDir(), "params.txt")
		if err := a.Save(path); err != nil {
			t.Fatal(err)
		}
		loaded, err := Load(path, model)
		if err != nil {
			t.Fatal(err)
		}
		want, _ := a.AlignSentence("flor azul", "blue flower")
		got, err := loaded.AlignSentence("flor azul", "blue flower")
		if err != nil {
			t.Fatal(err)
		}
		if FormatLinks(got) != FormatLinks(want) {
			t.Errorf("%v: loaded links %v, want %v", model, got, want)
		}
	}
}

func TestTrainModel2Seeds(t *testing.T) {
	src, tgt := writeCorpus(t)

	m1, err := Train(src, tgt, &TrainConfig{Model: ibm.Model1, Rounds: 5})
	if err != nil {
		t.Fatal(err)
	}
	initPath := filepath.Join(t.TempDir(), "t1.txt")
	if err := m1.Save(initPath); err != nil {
		t.Fatal(err)
	}

	configs := map[string]*TrainConfig{
		"uniform":     {Model: ibm.Model2},
		"init file":   {Model: ibm.Model2, InitPath: initPath},
		"ibm1 rounds": {Model: ibm.Model2, Model1Rounds: 5},
	}
	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			rounds := 0
			config.OnRound = func(round int, ll float64) {
				rounds++
				if math.IsNaN(ll) {
					t.Errorf("round %d: log-likelihood is NaN", round)
				}
			}
			a, err := Train(src, tgt, config)
			if err != nil {
				t.Fatal(err)
			}
			if rounds != 5 {
				t.Errorf("OnRound called %d times, want 5", rounds)
			}
			links, err := a.AlignSentence("casa verde", "green house")
			if err != nil {
				t.Fatal(err)
			}
			if got := FormatLinks(links); got != "1-2 2-1" {
				t.Errorf("links = %s, want 1-2 2-1", got)
			}
		})
	}
}

func TestTrainErrors(t *testing.T) {
	src, tgt := writeCorpus(t)
	if _, err := Train(src, filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for missing target file")
	}
	if _, err := Train(src, tgt, &TrainConfig{Model: ibm.Model2, InitPath: "missing.txt"}); err == nil {
		t.Error("expected error for missing init file")
	}

	short := filepath.Join(t.TempDir(), "short.en")
	if err := os.WriteFile(short, []byte("blue house\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Train(src, short, nil)
	if err == nil || !strings.Contains(err.Error(), "line counts differ") {
		t.Errorf("error = %v, want line count mismatch", err)
	}
}

func TestLoadNonExistent(t *testing.T) {
	if _, err := Load("nonexistent.txt", ibm.Model1); err == nil {
		t.Error("expected error for nonexistent parameter file")
	}
}

func TestAlignerNotInitialized(t *testing.T) {
	a := &Aligner{}
	if _, err := a.AlignSentence("casa", "house"); err == nil {
		t.Error("expected error for uninitialized aligner")
	}
	if err := a.Save(filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("expected error for uninitialized aligner")
	}
}

func TestEvaluate(t *testing.T) {
	dir := t.TempDir()
	pred := filepath.Join(dir, "pred")
	gold := filepath.Join(dir, "gold")
	// Second link of sentence 2 is wrong; the NULL link is ignored.
	if err := os.WriteFile(pred, []byte("1 2 1\n1 1 2\n2 2 1\n2 2 2\n3 0 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(gold, []byte("1 2 1\n1 1 2\n2 2 1\n2 1 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Evaluate(pred, gold, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Correct != 3 || r.Predicted != 4 || r.Gold != 4 {
		t.Errorf("counts = %d/%d/%d, want 3/4/4", r.Correct, r.Predicted, r.Gold)
	}
	if math.Abs(r.Precision-0.75) > 1e-12 || math.Abs(r.Recall-0.75) > 1e-12 {
		t.Errorf("P/R = %v/%v, want 0.75/0.75", r.Precision, r.Recall)
	}
	if math.Abs(r.AER-0.25) > 1e-12 {
		t.Errorf("AER = %v, want 0.25", r.AER)
	}

	if err := os.WriteFile(gold, []byte("1 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Evaluate(pred, gold, nil); err == nil {
		t.Error("expected error for malformed gold file")
	}
}

func TestEvaluateModel1Null(t *testing.T) {
	src, tgt := writeCorpus(t)
	dir := t.TempDir()
	pred := filepath.Join(dir, "pred")
	gold := filepath.Join(dir, "gold")
	// Every target sentence has two words, so position 3 is NULL.
	if err := os.WriteFile(pred, []byte("1 2 1\n1 3 2\n2 2 1\n2 1 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(gold, []byte("1 2 1\n1 1 2\n2 2 1\n2 1 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Evaluate(pred, gold, &EvalConfig{Model: ibm.Model1, SourcePath: src, TargetPath: tgt})
	if err != nil {
		t.Fatal(err)
	}
	if r.Correct != 3 || r.Predicted != 3 || r.Gold != 4 {
		t.Errorf("counts = %d/%d/%d, want 3/3/4", r.Correct, r.Predicted, r.Gold)
	}
	if r.Precision != 1 {
		t.Errorf("Precision = %v, want 1", r.Precision)
	}

	// Read with Model 2 numbering, the NULL link counts as a wrong link.
	r, err = Evaluate(pred, gold, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Predicted != 4 || math.Abs(r.Precision-0.75) > 1e-12 {
		t.Errorf("model 2 numbering: predicted %d, precision %v", r.Predicted, r.Precision)
	}

	if _, err := Evaluate(pred, gold, &EvalConfig{Model: ibm.Model1}); err == nil {
		t.Error("expected error for model 1 without corpus")
	}
	if err := os.WriteFile(pred, []byte("9 1 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Evaluate(pred, gold, &EvalConfig{Model: ibm.Model1, SourcePath: src, TargetPath: tgt}); err == nil {
		t.Error("expected error for sentence outside the corpus")
	}
}

func TestTrainInMemory(t *testing.T) {
	src, tgt := writeCorpus(t)
	for _, model := range []ibm.Model{ibm.Model1, ibm.Model2} {
		streamed, err := Train(src, tgt, &TrainConfig{Model: model})
		if err != nil {
			t.Fatal(err)
		}
		loaded, err := Train(src, tgt, &TrainConfig{Model: model, InMemory: true})
		if err != nil {
			t.Fatal(err)
		}
		var want, got bytes.Buffer
		if err := streamed.WriteParams(&want); err != nil {
			t.Fatal(err)
		}
		if err := loaded.WriteParams(&got); err != nil {
			t.Fatal(err)
		}
		if got.String() != want.String() {
			t.Errorf("%v: in-memory parameters differ:\n%s\nwant:\n%s", model, got.String(), want.String())
		}
	}

	short := filepath.Join(t.TempDir(), "short.en")
	if err := os.WriteFile(short, []byte("blue house\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Train(src, short, &TrainConfig{InMemory: true}); err == nil {
		t.Error("expected line count mismatch")
	}
}
