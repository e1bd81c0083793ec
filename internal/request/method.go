package request

// Method identifies a request method from the closed vocabulary below.
// The zero value, MethodUnknown, means the token was not recognized.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodDelete
	MethodGet
	MethodHead
	MethodPost
	MethodPut
	MethodConnect
	MethodOptions
	MethodTrace
	MethodCopy
	MethodLock
	MethodMkCol
	MethodMove
	MethodPropfind
	MethodProppatch
	MethodSearch
	MethodUnlock
	MethodBind
	MethodRebind
	MethodUnbind
	MethodAcl
	MethodReport
	MethodMkActivity
	MethodCheckout
	MethodMerge
	MethodMSearch
	MethodNotify
	MethodSubscribe
	MethodUnsubscribe
	MethodPatch
	MethodPurge
	MethodMkCalendar
	MethodLink
	MethodUnlink

	methodCount
)

// methodTokens is indexed by Method.
var methodTokens = [methodCount]string{
	MethodUnknown:     "",
	MethodDelete:      "DELETE",
	MethodGet:         "GET",
	MethodHead:        "HEAD",
	MethodPost:        "POST",
	MethodPut:         "PUT",
	MethodConnect:     "CONNECT",
	MethodOptions:     "OPTIONS",
	MethodTrace:       "TRACE",
	MethodCopy:        "COPY",
	MethodLock:        "LOCK",
	MethodMkCol:       "MKCOL",
	MethodMove:        "MOVE",
	MethodPropfind:    "PROPFIND",
	MethodProppatch:   "PROPPATCH",
	MethodSearch:      "SEARCH",
	MethodUnlock:      "UNLOCK",
	MethodBind:        "BIND",
	MethodRebind:      "REBIND",
	MethodUnbind:      "UNBIND",
	MethodAcl:         "ACL",
	MethodReport:      "REPORT",
	MethodMkActivity:  "MKACTIVITY",
	MethodCheckout:    "CHECKOUT",
	MethodMerge:       "MERGE",
	MethodMSearch:     "MSEARCH",
	MethodNotify:      "NOTIFY",
	MethodSubscribe:   "SUBSCRIBE",
	MethodUnsubscribe: "UNSUBSCRIBE",
	MethodPatch:       "PATCH",
	MethodPurge:       "PURGE",
	MethodMkCalendar:  "MKCALENDAR",
	MethodLink:        "LINK",
	MethodUnlink:      "UNLINK",
}

// methodsByLen buckets the vocabulary by token length so a lookup only
// compares against candidates of the right size.
var methodsByLen = func() [16][]Method {
	var t [16][]Method
	for m := MethodUnknown + 1; m < methodCount; m++ {
		n := len(methodTokens[m])
		t[n] = append(t[n], m)
	}
	return t
}()

// LookupMethod matches tok against the vocabulary, ignoring ASCII case.
// Unrecognized tokens yield (MethodUnknown, false).
func LookupMethod(tok []byte) (Method, bool) {
	if len(tok) == 0 || len(tok) >= len(methodsByLen) {
		return MethodUnknown, false
	}
	for _, m := range methodsByLen[len(tok)] {
		if upperEqual(tok, methodTokens[m]) {
			return m, true
		}
	}
	return MethodUnknown, false
}

// String returns the canonical upper-case token.
func (m Method) String() string {
	if m >= methodCount {
		return ""
	}
	return methodTokens[m]
}

// upperEqual compares b to the upper-case token s, ignoring the case of b.
func upperEqual(b []byte, s string) bool {
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != s[i] {
			return false
		}
	}
	return true
}
