package generator

import "strings"

// NoSendToken is appended to the CC line when the batch must not go out.
const NoSendToken = "nosend"

const ccSeparator = "; "

// CCLine joins account team and additional contacts with "; ". When noSend
// is set the NoSendToken is appended with the same rule.
func CCLine(accountTeam, additional string, noSend bool) string {
	cc := strings.TrimSpace(accountTeam)
	cc = appendCC(cc, strings.TrimSpace(additional))
	if noSend {
		cc = appendCC(cc, NoSendToken)
	}
	return cc
}

func appendCC(cc, next string) string {
	switch {
	case next == "":
		return cc
	case cc == "":
		return next
	default:
		return cc + ccSeparator + next
	}
}
