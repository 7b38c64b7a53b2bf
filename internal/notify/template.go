package notify

const alertHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Subject}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: #1f2937;
      color: #ffffff;
    }

    .offer {
      padding: 16px 24px;
      border-top: 1px solid #e5e7eb;
    }

    .ticker {
      font-size: 20px;
      font-weight: 700;
      letter-spacing: 0.05em;
    }

    .prices {
      font-family: ui-monospace, Menlo, monospace;
      font-size: 14px;
    }

    .issuer {
      font-size: 13px;
      color: #4b5563;
    }

    a {
      color: #2563eb;
      word-break: break-all;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="ticker">{{.Subject}}</div>
      <div>{{.RunAt}}</div>
    </div>
    {{range .Offers}}
    <div class="offer">
      <div class="ticker">{{.Ticker}}</div>
      <div class="prices">{{money .CurrentPrice}} &le; {{money .PriceFloor}} (range {{money .PriceFloor}} to {{money .PriceCeiling}}, {{percent .}} below floor)</div>
      <div class="issuer">{{.IssuerName}}{{if .FormType}} · {{.FormType}}{{end}}</div>
      <div><a href="{{.SourceLink}}">{{.SourceLink}}</a></div>
    </div>
    {{end}}
  </div>
</body>
</html>
`
