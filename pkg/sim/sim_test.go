package sim_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/245790/gemini/pkg/must"
	"github.com/245790/gemini/pkg/prog/progtest"
	"github.com/245790/gemini/pkg/sim"
	"github.com/245790/gemini/pkg/testutil"
)

var (
	Test       = progtest.Test
	ThatGemini = progtest.ThatGemini
)

const gliderRLE = "x = 3, y = 3, rule = B3/S23\nbo$2bo$3o!\n"

func TestProgram(t *testing.T) {
	dir := testutil.TempDir(t)
	cfg := filepath.Join(dir, "config.yaml")
	must.WriteFile(cfg, "width: 16\nheight: 16\nseed: 1\n")
	glider := filepath.Join(dir, "glider.rle")
	must.WriteFile(glider, "#N Glider\n"+gliderRLE)
	blinker := filepath.Join(dir, "blinker.cells")
	must.WriteFile(blinker, "O\nO\nO\n")
	row := filepath.Join(dir, "row.cells")
	must.WriteFile(row, "OOO\n")
	bad := filepath.Join(dir, "bad.rle")
	must.WriteFile(bad, "3!")

	Test(t, &sim.Program{},
		ThatGemini("-config", cfg).
			WritesStdoutContaining("generation: 0\npopulation: 0\nwidth: 16\n"),
		ThatGemini("-config", cfg, glider).
			WritesStdoutContaining("generation: 0\npopulation: 5\nwidth: 16\n"),
		ThatGemini("-config", cfg, "-gens", "4", glider).
			WritesStdoutContaining("generation: 4\npopulation: 5\n"),
		ThatGemini("-config", cfg, "-gens", "4", "-format", "rle", glider).
			WritesStdout(gliderRLE),
		ThatGemini("-config", cfg, "-gens", "1", "-format", "plain", blinker).
			WritesStdout("OOO\n"),
		ThatGemini("-config", cfg, "-jump", "-gens", "1", glider).
			WritesStdoutContaining("population: 5\n"),
		ThatGemini("-config", cfg, "-rotate", "cw", "-format", "plain", row).
			WritesStdout("O\nO\nO\n"),
		ThatGemini("-config", cfg, "-rotate", "acw", "-format", "plain", row).
			WritesStdout("O\nO\nO\n"),
		ThatGemini("-config", cfg, "-random").
			WritesStdoutContaining("generation: 0\n"),
		// The output is a pipe, so only the final frame gets drawn.
		ThatGemini("-config", cfg, "-view", "-gens", "1", "-format", "plain", blinker).
			WritesStdoutContaining("\n"+strings.Repeat(" ", 39)+"###\n"+strings.Repeat("\n", 11)+
				"generation 1, population 3\nOOO\n"),

		ThatGemini("-config", cfg, bad).
			ExitsWith(2).WritesStderrContaining("count before !"),
		ThatGemini("-config", cfg, filepath.Join(dir, "nosuch.rle")).
			ExitsWith(2).WritesStderrContaining("no such file or directory"),
		ThatGemini("-config", cfg, "-open", "glider").
			ExitsWith(2).WritesStderrContaining("no pattern database configured"),
	)
}

func TestProgram_BadUsage(t *testing.T) {
	Test(t, &sim.Program{},
		ThatGemini("a.rle", "b.rle").
			ExitsWith(2).WritesStderrContaining("at most one pattern file may be given"),
		ThatGemini("-open", "x", "a.rle").
			ExitsWith(2).WritesStderrContaining("cannot be combined with -open"),
		ThatGemini("-random", "a.rle").
			ExitsWith(2).WritesStderrContaining("-random cannot be combined"),
		ThatGemini("-gens", "-1").
			ExitsWith(2).WritesStderrContaining("-gens must not be negative"),
		ThatGemini("-format", "gif").
			ExitsWith(2).WritesStderrContaining(`unknown format "gif"`),
		ThatGemini("-rotate", "up").
			ExitsWith(2).WritesStderrContaining(`unknown rotation "up"`),
	)
}

func TestProgram_DB(t *testing.T) {
	dir := testutil.TempDir(t)
	cfg := filepath.Join(dir, "config.yaml")
	must.WriteFile(cfg, "db: "+filepath.Join(dir, "db", "gemini.db")+"\n")
	glider := filepath.Join(dir, "glider.rle")
	must.WriteFile(glider, gliderRLE)

	Test(t, &sim.Program{},
		ThatGemini("-config", cfg, "-save", "glider", glider).
			WritesStdoutContaining("population: 5\n"),
		ThatGemini("-config", cfg, "-open", "glider", "-format", "rle").
			WritesStdout(gliderRLE),
		ThatGemini("-config", cfg, "-open", "glider", "-gens", "8", "-save", "later").
			WritesStdoutContaining("generation: 8\n"),
		ThatGemini("-config", cfg, "-open", "later", "-format", "rle").
			WritesStdout(gliderRLE),
		ThatGemini("-config", cfg, "-open", "nosuch").
			ExitsWith(2).WritesStderrContaining("nosuch: no such pattern"),
	)
}
