/*
	The `save` package is the HTTP side of saving graphs: it posts a
	form-encoded payload to the calculator service and makes sense of
	what comes back.

	`Client` implements `graph.Saver`.
*/
package save

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/polydawn/refmt"
	"github.com/polydawn/refmt/json"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/errcat"
)

const (
	DefaultEndpoint       = "https://www.desmos.com/api/v1/calculator/save"
	DefaultCalculatorBase = "https://www.desmos.com/calculator"
)

// Responses bigger than this are not a receipt.
const maxResponseSize = 1 << 20

type Client struct {
	Endpoint string       // where payloads are posted.
	Base     string       // public calculator base; also sent as the Referer.
	HTTP     *http.Client // nil means `http.DefaultClient`.
	Log      log15.Logger // nil means silent.
}

func NewClient(endpoint, base string, timeout time.Duration, log log15.Logger) *Client {
	if log == nil {
		log = discardLog
	}
	return &Client{
		Endpoint: endpoint,
		Base:     base,
		HTTP:     &http.Client{Timeout: timeout},
		Log:      log,
	}
}

var discardLog = func() log15.Logger {
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	return l
}()

func (c *Client) CalculatorBase() string {
	if c.Base == "" {
		return DefaultCalculatorBase
	}
	return c.Base
}

func (c *Client) endpoint() string {
	if c.Endpoint == "" {
		return DefaultEndpoint
	}
	return c.Endpoint
}

// A Client is not modified by use; zero-value fields are filled in per call.
func (c *Client) log() log15.Logger {
	if c.Log == nil {
		return discardLog
	}
	return c.Log
}

/*
	Save posts one payload and returns the service's receipt.

	Exactly one request is made; nothing is retried.  Failing to get any
	response at all is an `api.ErrSaveTransport`; a response that isn't a
	2xx status with a JSON body naming a hash is an `api.ErrSaveProtocol`.
*/
func (c *Client) Save(ctx context.Context, payload string) (api.SaveReceipt, error) {
	req, err := http.NewRequest("POST", c.endpoint(), strings.NewReader(payload))
	if err != nil {
		return api.SaveReceipt{}, errcat.Errorf(api.ErrSaveTransport, "cannot build save request: %s", err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", c.CalculatorBase())

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	c.log().Debug("posting graph", "endpoint", req.URL.String(), "bytes", len(payload))
	resp, err := hc.Do(req)
	if err != nil {
		return api.SaveReceipt{}, errcat.Errorf(api.ErrSaveTransport, "save request failed: %s", err)
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return api.SaveReceipt{}, errcat.Errorf(api.ErrSaveTransport, "reading save response failed: %s", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log().Info("save rejected", "status", resp.StatusCode)
		return api.SaveReceipt{}, errcat.ErrorDetailed(api.ErrSaveProtocol,
			map[string]string{"status": resp.Status},
			"save rejected with status %d", resp.StatusCode)
	}
	receipt, err := ParseReceipt(body)
	if err != nil {
		return api.SaveReceipt{}, err
	}
	c.log().Debug("save receipt", "hash", receipt.Hash, "access", receipt.Access)
	return receipt, nil
}

/*
	ParseReceipt decodes a save response body.

	Unknown fields are ignored; the service adds things now and then and
	we only need the hash.  A body without a non-empty string hash is an
	`api.ErrSaveProtocol`.
*/
func ParseReceipt(body []byte) (api.SaveReceipt, error) {
	var raw map[string]interface{}
	if err := refmt.Unmarshal(json.DecodeOptions{}, body, &raw); err != nil {
		return api.SaveReceipt{}, errcat.Errorf(api.ErrSaveProtocol, "save response is not a json object: %s", err)
	}
	hash, _ := raw["hash"].(string)
	if hash == "" {
		return api.SaveReceipt{}, errcat.Errorf(api.ErrSaveProtocol, "save response did not include a graph hash")
	}
	return api.SaveReceipt{
		Hash:     hash,
		ThumbURL: stringField(raw, "thumbUrl"),
		StateURL: stringField(raw, "stateUrl"),
		Access:   stringField(raw, "access"),
		Created:  stringField(raw, "created"),
	}, nil
}

func stringField(m map[string]interface{}, k string) string {
	switch v := m[k].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
