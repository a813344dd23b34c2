package oracle

import "strings"

// Symbol renders the deribit instrument name <MARKET>-<DDMMMYY>-<STRIKE>-<C|P>,
// e.g. ETH-29SEP23-2000-C. The market id is used as given.
func Symbol(req DecodedRequest) string {
	var sb strings.Builder
	sb.WriteString(req.Market)
	sb.WriteByte('-')
	sb.WriteString(expiryCode(req))
	sb.WriteByte('-')
	sb.WriteString(req.Strike.Dec())
	sb.WriteByte('-')
	sb.WriteString(req.Option.Letter())
	return sb.String()
}

func expiryCode(req DecodedRequest) string {
	t := req.Expiry.UTC()
	return t.Format("02") + strings.ToUpper(t.Format("Jan")) + t.Format("06")
}
