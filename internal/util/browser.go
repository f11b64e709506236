package util

import (
	"os/exec"
	"runtime"
)

// browserCommands 按优先级返回打开 url 的候选命令
// Windows 7+ 优先 rundll32 url.dll，比 cmd /c start 稳定
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	}
	cmds := [][]string{{"xdg-open", url}}
	for _, b := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
		cmds = append(cmds, []string{b, url})
	}
	return cmds
}

// OpenBrowserWithFallback 依次尝试候选命令打开默认浏览器，返回第一个命令的错误
func OpenBrowserWithFallback(url string) error {
	var firstErr error
	for _, args := range browserCommands(runtime.GOOS, url) {
		err := exec.Command(args[0], args[1:]...).Start()
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
