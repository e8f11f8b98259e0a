package xray

import (
	"bufio"
	"regexp"
	"strings"
)

var regexLink = regexp.MustCompile(`(vmess|vless|trojan|ss|socks|socks4|socks5)://[a-zA-Z0-9_\-\.\:@\?=&%#+/\[\]~!$'*,;]+`)

// ExtractLinks finds share links in free text, one or more per line.
// Duplicates are dropped, first occurrence order is kept.
func ExtractLinks(text string) []string {
	var links []string
	text = strings.ReplaceAll(text, "\r\n", "\n")
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		matches := regexLink.FindAllStringIndex(line, -1)
		for _, m := range matches {
			// Reject lookalike schemes such as "xss://" or "123-vless://"
			if m[0] > 0 && isSchemeChar(line[m[0]-1]) {
				continue
			}
			clean := strings.TrimRight(line[m[0]:m[1]], ".,;)\"'")
			if clean != "" {
				links = append(links, clean)
			}
		}
	}
	return deduplicate(links)
}

func isSchemeChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.'
}

func deduplicate(input []string) []string {
	keys := make(map[string]bool)
	list := []string{}
	for _, entry := range input {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}
