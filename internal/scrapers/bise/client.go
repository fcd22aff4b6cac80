package bise

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"resultfetcher/internal/telemetry"
	"resultfetcher/lib/restyutil"
	libtelemetry "resultfetcher/lib/telemetry"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_client_fetch_tokens = "client.fetch-tokens"
	report_client_submit       = "client.submit"
	report_client_parse_result = "client.parse-result"
)

const (
	DEFAULT_URL          = "https://www.bisefsd.edu.pk/InterResults.aspx"
	DEFAULT_EXAM         = "72"
	DEFAULT_SUBJECT      = "PHYSICS"
	DEFAULT_SUBMIT_LABEL = " Get Result"
	DEFAULT_USER_AGENT   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
	DEFAULT_TIMEOUT      = time.Second * 30
)

var tracer = otel.Tracer("internal/scrapers/bise")

type ClientOptions struct {
	// Url is the address of the results form, it is both fetched and posted to.
	Url string
	// Exam is the value of the exam selector, ex. "72" for First Annual 2024.
	Exam        string
	Subject     string
	SubmitLabel string
	UserAgent   string
	// Timeout applies to each of the two requests on its own.
	Timeout          time.Duration
	CloudflareBypass bool
	// Dump, if set, receives every raw HTTP exchange.
	Dump restyutil.InstrumentOutput
}

func (o *ClientOptions) setDefaults() {
	if o.Url == "" {
		o.Url = DEFAULT_URL
	}
	if o.Exam == "" {
		o.Exam = DEFAULT_EXAM
	}
	if o.Subject == "" {
		o.Subject = DEFAULT_SUBJECT
	}
	if o.SubmitLabel == "" {
		o.SubmitLabel = DEFAULT_SUBMIT_LABEL
	}
	if o.UserAgent == "" {
		o.UserAgent = DEFAULT_USER_AGENT
	}
	if o.Timeout <= 0 {
		o.Timeout = DEFAULT_TIMEOUT
	}
}

// Client looks up results on the portal. It holds no session state, every
// Lookup captures its own tokens and cookies so it is safe for concurrent use.
type Client struct {
	opts ClientOptions
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	opts.setDefaults()
	if tel == nil {
		tel = telemetry.NewSlogAPI(nil)
	}
	tel = telemetry.NewScopedAPI("bise", tel)

	parsed, err := url.Parse(opts.Url)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("portal url must be http(s): %s", opts.Url)
	}

	httpClient := resty.New()
	// cookies only travel from a lookup's GET to its own POST, see Lookup
	httpClient.SetCookieJar(nil)
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname()))
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	libtelemetry.InstrumentResty(httpClient, "internal/scrapers/bise/http")
	restyutil.InstrumentClient(httpClient, "bise-", opts.Dump)

	return &Client{
		opts: opts,
		http: httpClient,
		tel:  tel,
	}, nil
}

func (c *Client) Subject() string {
	return c.opts.Subject
}

func (c *Client) document(res *resty.Response) (*goquery.Document, error) {
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status())
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// FetchTokens loads the entry page and captures the tokens (and cookies) the
// next submission must echo back.
func (c *Client) FetchTokens(ctx context.Context) (Tokens, []*http.Cookie, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.opts.Url)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_tokens,
			fmt.Errorf("fetch: %w", err),
		)
		return Tokens{}, nil, err
	}
	doc, err := c.document(res)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_tokens,
			fmt.Errorf("parse: %w", err),
		)
		return Tokens{}, nil, err
	}

	tokens, err := ExtractTokens(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_tokens, err)
		return Tokens{}, nil, err
	}
	return tokens, res.Cookies(), nil
}

// Submit posts the results form and returns the parsed response page.
func (c *Client) Submit(ctx context.Context, submission Submission, cookies []*http.Cookie) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("Referer", c.opts.Url).
		SetCookies(cookies).
		SetBody(submission.Form().Encode()).
		Post(c.opts.Url)
	if err != nil {
		c.tel.ReportBroken(
			report_client_submit,
			fmt.Errorf("fetch: %w", err),
			submission.RollNumber,
		)
		return nil, err
	}
	doc, err := c.document(res)
	if err != nil {
		c.tel.ReportBroken(
			report_client_submit,
			fmt.Errorf("parse: %w", err),
			submission.RollNumber,
		)
		return nil, err
	}
	return doc, nil
}

// Lookup runs the whole protocol for one roll number: load the form, capture
// its tokens, submit the roll number and parse the response.
func (c *Client) Lookup(ctx context.Context, rollNumber string) (Result, error) {
	ctx, span := tracer.Start(ctx, "Client:Lookup", trace.WithAttributes(
		attribute.String("roll_number", rollNumber),
	))
	defer span.End()

	tokens, cookies, err := c.FetchTokens(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to capture tokens")
		return Result{}, fmt.Errorf("capture tokens: %w", err)
	}

	doc, err := c.Submit(ctx, Submission{
		RollNumber:  rollNumber,
		Exam:        c.opts.Exam,
		SubmitLabel: c.opts.SubmitLabel,
		Tokens:      tokens,
	}, cookies)
	if err != nil {
		span.SetStatus(codes.Error, "failed to submit form")
		return Result{}, fmt.Errorf("submit: %w", err)
	}

	result, err := ParseResult(doc, c.opts.Subject)
	if err != nil {
		c.tel.ReportBroken(report_client_parse_result, err, rollNumber)
		span.SetStatus(codes.Error, "failed to parse result page")
		return Result{}, fmt.Errorf("parse result: %w", err)
	}
	span.SetAttributes(attribute.Bool("found", result.Found))
	return result, nil
}
