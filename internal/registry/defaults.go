package registry

import "hero/internal/executor"

// Defaults is the built-in action table used when the config names no actions.
func Defaults() []ActionSpec {
	return []ActionSpec{
		{Category: Open, App: "calculator", Launch: []string{"calc"}, Keywords: []string{"calculator", "calc"}, Phrase: "Opening Calculator"},
		{Category: Open, App: "brave", Launch: []string{"cmd", "/c", "start", "brave"}, Keywords: []string{"brave", "browser"}, Phrase: "Opening Brave"},
		{Category: Open, App: "notepad", Launch: []string{"notepad"}, Keywords: []string{"notepad", "editor"}, Phrase: "Opening Notepad"},

		{Category: Close, App: "calculator", Launch: executor.Terminate(executor.ByTitle, "Calculator"), Keywords: []string{"calculator", "calc"}, Phrase: "Closing Calculator"},
		{Category: Close, App: "brave", Launch: executor.Terminate(executor.ByImage, "brave.exe"), Keywords: []string{"brave", "browser"}, Phrase: "Closing Brave"},
		{Category: Close, App: "notepad", Launch: executor.Terminate(executor.ByImage, "notepad.exe"), Keywords: []string{"notepad", "editor"}, Phrase: "Closing Notepad"},
	}
}
