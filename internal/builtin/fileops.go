package builtin

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"termai/internal/terminal"
)

// lsCmd lists directory entries, one per line. -a includes dotfiles,
// -l adds size and modification time.
func lsCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	showAll := false
	long := false
	var paths []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") && len(a) > 1 {
			for _, f := range a[1:] {
				switch f {
				case 'a':
					showAll = true
				case 'l':
					long = true
				default:
					return terminal.Failf(terminal.ExitUsage, "ls: invalid option -- '%c'", f)
				}
			}
			continue
		}
		paths = append(paths, a)
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var out []string
	var errs []string
	for _, p := range paths {
		target := sess.Resolve(p)
		info, err := os.Stat(target)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: no such file or directory", p))
			continue
		}
		if len(paths) > 1 {
			out = append(out, p+":")
		}
		if !info.IsDir() {
			out = append(out, formatEntry(info, long))
			continue
		}
		entries, err := os.ReadDir(target)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: permission denied", p))
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, e := range entries {
			if !showAll && strings.HasPrefix(e.Name(), ".") {
				continue
			}
			fi, err := e.Info()
			if err != nil {
				continue
			}
			out = append(out, formatEntry(fi, long))
		}
	}
	if len(errs) > 0 {
		r := terminal.Failf(terminal.ExitFailure, "%s", errs[0])
		r.Stderr = errs
		r.Stdout = out
		return r
	}
	return terminal.OK(out...)
}

func formatEntry(fi fs.FileInfo, long bool) string {
	name := fi.Name()
	if fi.IsDir() {
		name += "/"
	}
	if !long {
		return name
	}
	return fmt.Sprintf("%s %8d %s %s",
		fi.Mode().String(), fi.Size(), fi.ModTime().Format("Jan _2 15:04"), name)
}

func cdCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	dir := ""
	switch len(args) {
	case 0:
		home, err := os.UserHomeDir()
		if err != nil {
			return terminal.Failf(terminal.ExitFailure, "cd: cannot determine home directory")
		}
		dir = home
	case 1:
		dir = args[0]
	default:
		return terminal.Failf(terminal.ExitUsage, "cd: too many arguments")
	}
	if err := sess.ChangeDir(dir); err != nil {
		return terminal.Failf(terminal.ExitFailure, "cd: %s", err)
	}
	return terminal.OK()
}

func pwdCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	return terminal.OK(sess.WorkingDir())
}

func mkdirCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if len(args) == 0 {
		return terminal.Failf(terminal.ExitUsage, "mkdir: missing operand")
	}
	var errs []string
	for _, a := range args {
		if err := os.MkdirAll(sess.Resolve(a), 0o755); err != nil {
			errs = append(errs, fmt.Sprintf("mkdir: cannot create directory '%s'", a))
		}
	}
	return batchResult(errs)
}

// rmCmd removes each target independently so one missing file does not
// abort the rest of the batch.
func rmCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	recursive := false
	force := false
	var targets []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") && len(a) > 1 {
			for _, f := range a[1:] {
				switch f {
				case 'r', 'R':
					recursive = true
				case 'f':
					force = true
				default:
					return terminal.Failf(terminal.ExitUsage, "rm: invalid option -- '%c'", f)
				}
			}
			continue
		}
		targets = append(targets, a)
	}
	if len(targets) == 0 {
		if force {
			return terminal.OK()
		}
		return terminal.Failf(terminal.ExitUsage, "rm: missing operand")
	}
	var errs []string
	for _, t := range targets {
		path := sess.Resolve(t)
		info, err := os.Lstat(path)
		if err != nil {
			if !force {
				errs = append(errs, fmt.Sprintf("%s: no such file or directory", t))
			}
			continue
		}
		if info.IsDir() {
			if !recursive {
				errs = append(errs, fmt.Sprintf("%s: is a directory", t))
				continue
			}
			if err := os.RemoveAll(path); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", t, err))
			}
			continue
		}
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", t, err))
		}
	}
	return batchResult(errs)
}

func rmdirCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if len(args) == 0 {
		return terminal.Failf(terminal.ExitUsage, "rmdir: missing operand")
	}
	var errs []string
	for _, a := range args {
		path := sess.Resolve(a)
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: no such file or directory", a))
			continue
		}
		if !info.IsDir() {
			errs = append(errs, fmt.Sprintf("%s: not a directory", a))
			continue
		}
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Sprintf("%s: directory not empty", a))
		}
	}
	return batchResult(errs)
}

// cpCmd copies each source to the destination. With multiple sources
// the destination must be an existing directory.
func cpCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if len(args) < 2 {
		return terminal.Failf(terminal.ExitUsage, "cp: missing destination operand")
	}
	sources := args[:len(args)-1]
	dst := sess.Resolve(args[len(args)-1])
	dstInfo, err := os.Stat(dst)
	dstIsDir := err == nil && dstInfo.IsDir()
	if len(sources) > 1 && !dstIsDir {
		return terminal.Failf(terminal.ExitFailure, "cp: target '%s' is not a directory", args[len(args)-1])
	}
	var errs []string
	for _, s := range sources {
		src := sess.Resolve(s)
		info, err := os.Stat(src)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: no such file", s))
			continue
		}
		if info.IsDir() {
			errs = append(errs, fmt.Sprintf("%s: is a directory", s))
			continue
		}
		target := dst
		if dstIsDir {
			target = filepath.Join(dst, filepath.Base(src))
		}
		if err := copyFile(src, target, info.Mode().Perm()); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", s, err))
		}
	}
	return batchResult(errs)
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func mvCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if len(args) < 2 {
		return terminal.Failf(terminal.ExitUsage, "mv: missing destination operand")
	}
	sources := args[:len(args)-1]
	dst := sess.Resolve(args[len(args)-1])
	dstInfo, err := os.Stat(dst)
	dstIsDir := err == nil && dstInfo.IsDir()
	if len(sources) > 1 && !dstIsDir {
		return terminal.Failf(terminal.ExitFailure, "mv: target '%s' is not a directory", args[len(args)-1])
	}
	var errs []string
	for _, s := range sources {
		src := sess.Resolve(s)
		if _, err := os.Lstat(src); err != nil {
			errs = append(errs, fmt.Sprintf("%s: no such file", s))
			continue
		}
		target := dst
		if dstIsDir {
			target = filepath.Join(dst, filepath.Base(src))
		}
		if err := os.Rename(src, target); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", s, err))
		}
	}
	return batchResult(errs)
}

func catCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if len(args) == 0 {
		return terminal.Failf(terminal.ExitUsage, "cat: missing operand")
	}
	var out []string
	var errs []string
	for _, a := range args {
		data, err := os.ReadFile(sess.Resolve(a))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: no such file or directory", a))
			continue
		}
		text := strings.TrimSuffix(string(data), "\n")
		if text == "" {
			continue
		}
		out = append(out, strings.Split(text, "\n")...)
	}
	if len(errs) > 0 {
		r := terminal.Result{ExitCode: terminal.ExitFailure, Stdout: out, Stderr: errs}
		return r
	}
	return terminal.OK(out...)
}

func touchCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if len(args) == 0 {
		return terminal.Failf(terminal.ExitUsage, "touch: missing operand")
	}
	var errs []string
	for _, a := range args {
		path := sess.Resolve(a)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: cannot touch", a))
			continue
		}
		f.Close()
		now := termNow()
		if err := os.Chtimes(path, now, now); err != nil {
			errs = append(errs, fmt.Sprintf("%s: cannot touch", a))
		}
	}
	return batchResult(errs)
}

func grepCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if len(args) < 2 {
		return terminal.Failf(terminal.ExitUsage, "grep: usage: grep <pattern> <file>...")
	}
	pattern := args[0]
	var out []string
	var errs []string
	matched := false
	for _, a := range args[1:] {
		data, err := os.ReadFile(sess.Resolve(a))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: no such file or directory", a))
			continue
		}
		for i, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
			if strings.Contains(line, pattern) {
				matched = true
				if len(args) > 2 {
					out = append(out, fmt.Sprintf("%s:%d:%s", a, i+1, line))
				} else {
					out = append(out, fmt.Sprintf("%d:%s", i+1, line))
				}
			}
		}
	}
	if len(errs) > 0 {
		return terminal.Result{ExitCode: terminal.ExitFailure, Stdout: out, Stderr: errs}
	}
	if !matched {
		return terminal.Failf(terminal.ExitFailure, "grep: no matches found")
	}
	return terminal.OK(out...)
}

func findCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	root := "."
	name := ""
	i := 0
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		root = args[0]
		i = 1
	}
	for ; i < len(args); i++ {
		switch args[i] {
		case "-name":
			if i+1 >= len(args) {
				return terminal.Failf(terminal.ExitUsage, "find: missing argument to -name")
			}
			i++
			name = args[i]
		default:
			return terminal.Failf(terminal.ExitUsage, "find: unknown predicate '%s'", args[i])
		}
	}
	start := sess.Resolve(root)
	if _, err := os.Stat(start); err != nil {
		return terminal.Failf(terminal.ExitFailure, "find: %s: no such file or directory", root)
	}
	var out []string
	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if name != "" {
			ok, _ := filepath.Match(name, d.Name())
			if !ok && !strings.Contains(d.Name(), name) {
				return nil
			}
		}
		rel, rerr := filepath.Rel(sess.WorkingDir(), path)
		if rerr != nil || strings.HasPrefix(rel, "..") {
			rel = path
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return terminal.Failf(terminal.ExitFailure, "find: %v", err)
	}
	return terminal.OK(out...)
}

func duCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	target := "."
	if len(args) > 1 {
		return terminal.Failf(terminal.ExitUsage, "du: too many arguments")
	}
	if len(args) == 1 {
		target = args[0]
	}
	start := sess.Resolve(target)
	if _, err := os.Stat(start); err != nil {
		return terminal.Failf(terminal.ExitFailure, "du: %s: no such file or directory", target)
	}
	var total int64
	filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return terminal.OK(fmt.Sprintf("%.1fM\t%s", float64(total)/(1024*1024), target))
}

// batchResult folds per-target errors into a single Result. No errors
// means success with no output.
func batchResult(errs []string) terminal.Result {
	if len(errs) == 0 {
		return terminal.OK()
	}
	return terminal.Result{ExitCode: terminal.ExitFailure, Stderr: errs}
}
