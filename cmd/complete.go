package cmd

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mwantia/vshell/session"
	"github.com/mwantia/vshell/tree"
)

// Complete returns the candidates for the last word of line. Candidates
// are computed from the registry, world and session at call time, so a
// mutation is visible to the very next completion.
func Complete(registry *Registry, world *session.World, s *session.Context, line string) []string {
	words := strings.Fields(line)
	if len(words) == 0 || !strings.HasSuffix(line, " ") && len(words) == 1 {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}
		return filter(registry.Verbs(), prefix)
	}

	prefix := ""
	if !strings.HasSuffix(line, " ") {
		prefix = words[len(words)-1]
		words = words[:len(words)-1]
	}

	cmd, ok := registry.Lookup(words[0])
	if !ok {
		return nil
	}
	flags := cmd.GetFlags()
	if flags == nil || strings.HasPrefix(prefix, "-") {
		return nil
	}

	position := 0
	for _, word := range words[1:] {
		if !isFlag(word) {
			position++
		}
	}
	if position >= len(flags.Args) {
		return nil
	}

	switch flags.Args[position].Complete {
	case CompleteVerbs:
		return filter(registry.Verbs(), prefix)
	case CompleteHosts:
		var labels []string
		for _, c := range world.Hosts() {
			labels = append(labels, c.Host)
		}
		return filter(labels, prefix)
	case CompleteDirs, CompleteFiles, CompleteNodes:
		return completePath(s, prefix, flags.Args[position].Complete)
	}
	return nil
}

func completePath(s *session.Context, prefix string, mode Completion) []string {
	dir, base := "", prefix
	if i := strings.LastIndex(prefix, session.Separator); i >= 0 {
		dir, base = prefix[:i+1], prefix[i+1:]
	}

	parent := s.Cwd()
	if dir != "" {
		id, err := s.Lookup(dir)
		if err != nil {
			return nil
		}
		parent = id
	}

	t := s.Tree()
	var candidates []string
	if dir == "" && mode == CompleteDirs {
		candidates = append(candidates, session.Home, tree.ParentRef)
	}

	for _, info := range t.Sorted(parent) {
		if strings.HasPrefix(info.Name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}

		switch {
		case mode == CompleteDirs && !info.IsDir():
			continue
		case mode == CompleteFiles && info.IsDir():
			// Directories lead to files, so they stay reachable
			candidates = append(candidates, dir+info.Name+session.Separator)
			continue
		}

		name := dir + info.Name
		if info.IsDir() && mode != CompleteDirs {
			name += session.Separator
		}
		candidates = append(candidates, name)
	}

	return filter(candidates, prefix)
}

func filter(words []string, prefix string) []string {
	var out []string
	for _, word := range words {
		if strings.HasPrefix(word, prefix) {
			out = append(out, word)
		}
	}
	return slices.Compact(out)
}

// Extend applies candidates to the last word of line. A single candidate
// replaces the word; several extend it to their longest common prefix.
func Extend(line string, candidates []string) string {
	if len(candidates) == 0 {
		return line
	}

	head := line
	if i := strings.LastIndex(line, " "); i >= 0 {
		head = line[:i+1]
	} else {
		head = ""
	}

	if len(candidates) == 1 {
		word := candidates[0]
		if !strings.HasSuffix(word, session.Separator) {
			word += " "
		}
		return head + word
	}

	common := candidates[0]
	for _, c := range candidates[1:] {
		for !strings.HasPrefix(c, common) {
			_, size := utf8.DecodeLastRuneInString(common)
			common = common[:len(common)-size]
		}
	}
	if len(head+common) < len(line) {
		return line
	}
	return head + common
}
