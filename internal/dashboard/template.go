package dashboard

// dashboardHTML is the single-page dashboard template. Charts are
// pre-rendered SVG injected as trusted HTML.
const dashboardHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Debt Issuance Dashboard</title>
<style>
    body{font-family:sans-serif;margin:2em;background-color:#f4f4f9;color:#333;} h1{color:#003399;}
    .controls, .us-controls{display:flex;align-items:center;gap:15px;margin-bottom:1em;padding:1em;border:1px solid #ccc;border-radius:8px;background-color:#fff;}
    .chart, .table-container{margin-top:2em;border:1px solid #ccc;border-radius:8px;background-color:#fff;padding:1em;}
    .table-container table{width:60%;border-collapse:collapse;margin-top:1em;}
    .table-container th, .table-container td{border:1px solid #ddd;padding:8px;text-align:left;}
    .table-container th{background-color:#e9ecef;}
    .message{margin-top:2em;padding:1em;border:1px solid #ccc;border-radius:8px;background-color:#fff;}
    .announcements li{margin-bottom:0.4em;}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="controls">
    <form method="get" style="margin:0;">
        <label for="country"><b>Select Country:</b></label>
        <select id="country" name="country" onchange="this.form.submit()">
            {{range .Countries}}<option value="{{.Code}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
            {{end}}
        </select>
    </form>
</div>
{{if .IsUS}}
<div class="us-controls">
    <form method="get" style="margin:0;">
        <input type="hidden" name="country" value="US">
        <span><b>Date Range:</b></span>
        <label for="start">Start:</label><input type="date" id="start" name="start_date" value="{{.StartDate}}">
        <label for="end">End:</label><input type="date" id="end" name="end_date" value="{{.EndDate}}">
        <button type="submit">Update</button>
    </form>
</div>
{{end}}
{{if .Message}}
<div class="message"><p>{{.Message}}</p></div>
{{else}}
<div class="chart">{{.MixChart}}</div>
<div class="chart">{{.NominalChart}}</div>
{{end}}
{{if .IsUS}}
<div class="table-container">
    <h2>Forthcoming Auctions</h2>
    {{if .Forthcoming}}
    <table>
        <thead><tr><th>Auction Date</th><th>Security</th><th>Offering Amount</th></tr></thead>
        <tbody>
        {{range .Forthcoming}}<tr><td>{{.AuctionDate}}</td><td>{{.Security}}</td><td>{{.Amount}}</td></tr>
        {{end}}
        </tbody>
    </table>
    {{else}}
    <p>No future auctions currently announced.</p>
    {{end}}
</div>
{{if .Announcements}}
<div class="table-container announcements">
    <h2>Latest Announcements</h2>
    <ul>
    {{range .Announcements}}<li><a href="{{.Link}}">{{.Title}}</a>{{if .Published}} ({{.Published}}){{end}}</li>
    {{end}}
    </ul>
</div>
{{end}}
{{end}}
</body>
</html>
`
