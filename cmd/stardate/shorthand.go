package main

import "strings"

// expandDigitsShorthand rewrites the historical -s<digit> spelling, alone or
// inside a cluster such as -gs4q, into -s plus --digits=<digit>. Scanning a
// cluster stops at -d, whose value follows it directly.
func expandDigitsShorthand(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
			out = append(out, arg)
			continue
		}
		var b strings.Builder
		var extra []string
		b.WriteByte('-')
		for j := 1; j < len(arg); j++ {
			c := arg[j]
			if c == 'd' {
				b.WriteString(arg[j:])
				break
			}
			b.WriteByte(c)
			if c == 's' && j+1 < len(arg) && arg[j+1] >= '0' && arg[j+1] <= '6' {
				extra = append(extra, "--digits="+arg[j+1:j+2])
				j++
			}
		}
		out = append(out, b.String())
		out = append(out, extra...)
	}
	return out
}
