package device

import "regexp"

// classifyRule is one (pattern, validate) step in an ordered rule list.
// Rules are evaluated top to bottom and the first match whose validator
// accepts the capture wins. The validator may be nil (always accept).
type classifyRule struct {
	name     string
	re       *regexp.Regexp
	validate func(string) bool
}

// apply runs the rule list against text and returns the first accepted
// capture group.
func applyRules(rules []classifyRule, text string) (string, bool) {
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		capture := m[len(m)-1]
		if rule.validate != nil && !rule.validate(capture) {
			continue
		}
		return capture, true
	}
	return "", false
}

// platformRules classify "show version" output. NX-OS is checked before IOS
// XE before IOS because IOS XE banners also contain the string "IOS".
var platformRules = []classifyRule{
	{name: "nxos", re: regexp.MustCompile(`(?i)(NX-OS|Nexus Operating System)`)},
	{name: "ios-xe", re: regexp.MustCompile(`(?i)(IOS[- ]XE)`)},
	{name: "ios", re: regexp.MustCompile(`(?i)(IOS) Software`)},
}

// ClassifyPlatform maps "show version" output to a platform identifier.
func ClassifyPlatform(versionOutput string) string {
	for _, rule := range platformRules {
		if rule.re.MatchString(versionOutput) {
			return rule.name
		}
	}
	return PlatformUnknown
}

var hostnameRules = []classifyRule{
	// "hostname <name>" from running-config.
	{name: "running-config", re: regexp.MustCompile(`(?m)^hostname (\S+)`), validate: validHostname},
	// "<name> uptime is ..." from show version.
	{name: "uptime", re: regexp.MustCompile(`(?m)^(\S+) uptime is `), validate: validHostname},
	// "Device name: <name>" from NX-OS show version.
	{name: "device-name", re: regexp.MustCompile(`(?m)^\s*Device name:\s+(\S+)`), validate: validHostname},
	// Trailing prompt "<name>#" or "<name>>".
	{name: "prompt", re: regexp.MustCompile(`(?m)^(\S+)[#>]\s*$`), validate: validHostname},
}

var hostnameCharsRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func validHostname(s string) bool {
	return len(s) > 0 && len(s) <= 63 && hostnameCharsRe.MatchString(s)
}

// ClassifyHostname extracts the device hostname from CLI output, trying the
// running-config form, the show version uptime line, the NX-OS device-name
// line, and finally the prompt.
func ClassifyHostname(output string) (string, bool) {
	return applyRules(hostnameRules, output)
}

var modelRules = []classifyRule{
	// IOS/IOS-XE: "cisco WS-C3850-48T (MIPS) processor".
	{name: "cisco-processor", re: regexp.MustCompile(`(?m)^[Cc]isco (\S+) \([^)]+\) processor`)},
	// IOS-XE: "Model Number                       : C9300-24T".
	{name: "model-number", re: regexp.MustCompile(`(?m)^\s*Model [Nn]umber\s*:\s*(\S+)`)},
	// NX-OS: "cisco Nexus9000 C9336C-FX2 Chassis".
	{name: "nexus-chassis", re: regexp.MustCompile(`(?m)^\s*cisco (Nexus\S+(?: \S+)?) [Cc]hassis`)},
}

// ClassifyModel extracts the hardware model from "show version" output.
func ClassifyModel(versionOutput string) (string, bool) {
	return applyRules(modelRules, versionOutput)
}

var serialRules = []classifyRule{
	{name: "system-serial", re: regexp.MustCompile(`(?m)^\s*System [Ss]erial [Nn]umber\s*:\s*(\S+)`)},
	{name: "processor-board", re: regexp.MustCompile(`(?m)^Processor board ID (\S+)`)},
}

// ClassifySerial extracts the chassis serial number from "show version"
// output.
func ClassifySerial(versionOutput string) (string, bool) {
	return applyRules(serialRules, versionOutput)
}

// Identity bundles what classification recovers from a device's version
// output.
type Identity struct {
	Hostname string
	Platform string
	Model    string
	Serial   string
}

// Classify runs all identity rules against "show version" output.
func Classify(versionOutput string) Identity {
	id := Identity{Platform: ClassifyPlatform(versionOutput)}
	if h, ok := ClassifyHostname(versionOutput); ok {
		id.Hostname = h
	}
	if m, ok := ClassifyModel(versionOutput); ok {
		id.Model = m
	}
	if s, ok := ClassifySerial(versionOutput); ok {
		id.Serial = s
	}
	return id
}
