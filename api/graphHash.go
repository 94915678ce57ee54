package api

import (
	"crypto/md5"
	"math/big"
	"strconv"
	"time"
)

// GraphHashLen is the length of a graph hash, unless the digest happens to be tiny.
const GraphHashLen = 10

/*
	Returns the "graph_hash" token the save endpoint wants alongside a state.

	The token is the MD5 digest of the state string with the millisecond
	unix timestamp of `at` appended in decimal, read as an unsigned
	big-endian integer, printed in base 36, and cut to the first ten
	characters.

	This is a deterministic function of `(state, at)`, but it is salted with
	time on purpose: the service treats it as a weak anti-replay token, so
	two saves of the same graph at different instants should get different
	tokens.  Don't use it as a content address.
*/
func GraphHash(state string, at time.Time) string {
	hasher := md5.New()
	hasher.Write([]byte(state))
	hasher.Write([]byte(strconv.FormatInt(at.UnixNano()/int64(time.Millisecond), 10)))
	n := new(big.Int).SetBytes(hasher.Sum(nil))
	s := n.Text(36)
	if len(s) > GraphHashLen {
		s = s[:GraphHashLen]
	}
	return s
}
