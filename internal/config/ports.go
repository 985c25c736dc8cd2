package config

import (
	"fmt"
	"strconv"
	"strings"
)

// PortRange is an inclusive range of TCP ports.
type PortRange struct {
	First int32
	Last  int32
}

func (p PortRange) String() string {
	if p.First == p.Last {
		return strconv.Itoa(int(p.First))
	}
	return fmt.Sprintf("%d-%d", p.First, p.Last)
}

// ParsePortRange parses "N" or "N-M".
func ParsePortRange(s string) (PortRange, error) {
	s = strings.TrimSpace(s)
	first, last, isRange := strings.Cut(s, "-")

	lo, err := parsePort(first)
	if err != nil {
		return PortRange{}, fmt.Errorf("invalid port range %q: %w", s, err)
	}
	hi := lo
	if isRange {
		if hi, err = parsePort(last); err != nil {
			return PortRange{}, fmt.Errorf("invalid port range %q: %w", s, err)
		}
	}
	if lo > hi {
		return PortRange{}, fmt.Errorf("invalid port range %q: first port exceeds last", s)
	}
	return PortRange{First: lo, Last: hi}, nil
}

func parsePort(s string) (int32, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", n)
	}
	return int32(n), nil
}

// ParsePortRanges parses every entry of ports.
func ParsePortRanges(ports []string) ([]PortRange, error) {
	out := make([]PortRange, 0, len(ports))
	for _, p := range ports {
		r, err := ParsePortRange(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
