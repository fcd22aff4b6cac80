package restyutil

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

type instrumentCtx struct {
	prefix    string
	output    InstrumentOutput
	idcounter *uint64
}

// InstrumentClient writes every request/response exchange made by the client into `output`,
// each exchange gets its own id of the form `<prefix><n>`.
//
// `output` can be nil, if it is, then the function is a no-op
func InstrumentClient(client *resty.Client, prefix string, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	i := instrumentCtx{prefix: prefix, output: output, idcounter: &idcounter}
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i instrumentCtx) nextId(method string) string {
	n := atomic.AddUint64(i.idcounter, 1)
	return fmt.Sprintf("%s%03d-%s", i.prefix, n, strings.ToLower(method))
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	id := i.nextId(res.Request.Method)
	i.output.Write(id, formatHttpMessage(res))
	slog.DebugContext(
		res.Request.Context(), "request dumped",
		"method", res.Request.Method,
		"url", res.Request.URL,
		"message_id", id,
	)
	return nil
}

func (i instrumentCtx) onError(req *resty.Request, err error) {
	id := i.nextId(req.Method)
	i.output.Write(id, fmt.Sprintf("%s\n\n---- ERROR ----\n\n%s", formatHttpRequest(req), err.Error()))
}
