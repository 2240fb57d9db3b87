package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/interfaces/ui"
)

var surfaceHints = map[enums.Surface]string{
	enums.SurfaceLogin:     "Run `bm-social login` to sign in.",
	enums.SurfaceDashboard: "Signed in. Run `bm-social whoami` to see your dashboard.",
}

// navigator turns surface changes into hints on the error stream.
type navigator struct {
	w io.Writer
}

func (n navigator) Navigate(surface enums.Surface) {
	if hint, ok := surfaceHints[surface]; ok {
		_, _ = fmt.Fprintln(n.w, hint)
	}
}

func (a *App) navigator() ui.Navigator {
	return navigator{w: a.errOut}
}

// readLine prompts and returns the trimmed answer. io.EOF is returned only
// when nothing was typed before the input ended.
func (a *App) readLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(a.errOut, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) confirmer(assumeYes bool) ui.Confirmer {
	if assumeYes {
		return ui.ConfirmerFunc(func(string) bool { return true })
	}
	return ui.ConfirmerFunc(func(prompt string) bool {
		answer, err := a.readLine(prompt + " [y/N]: ")
		if err != nil {
			return false
		}
		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes"
	})
}

// valueOrPrompt returns value, asking for it when empty.
func (a *App) valueOrPrompt(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.readLine(prompt + ": ")
}
