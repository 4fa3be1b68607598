package http

// dashboardPage is the single dashboard view. Datasets are inlined as JSON
// and drawn with Chart.js on the client.
const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Project }} — project health</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
body { font-family: sans-serif; margin: 2rem; }
.grid { display: grid; grid-template-columns: 1fr 1fr; gap: 2rem; }
.card { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; }
h2 { font-size: 1rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: 0.25rem 0.5rem; text-align: left; }
</style>
</head>
<body>
<h1>{{ .Project }}</h1>
<form method="get">
  <input name="project" value="{{ .Project }}">
  <button type="submit">Load</button>
</form>
<div class="grid">
  <div class="card"><h2>Time to close (days)</h2><canvas id="timeToClose"></canvas></div>
  <div class="card"><h2>Time in In Progress (days)</h2><canvas id="inProgressTime"></canvas></div>
  <div class="card"><h2>Created / resolved per day</h2><canvas id="dailyStats"></canvas></div>
  <div class="card"><h2>Priorities</h2><canvas id="priorities"></canvas></div>
  <div class="card"><h2>Time per status (days)</h2><canvas id="statusTime"></canvas></div>
  <div class="card"><h2>Top users</h2>
    <table><tr><th>User</th><th>Count</th></tr>
    {{ range .Data.TopUsers }}<tr><td>{{ .User }}</td><td>{{ .Count }}</td></tr>{{ end }}
    </table>
  </div>
</div>
<script>
const data = {{ .Data }};

function bars(id, bins, label) {
  new Chart(document.getElementById(id), {
    type: 'bar',
    data: {
      labels: (bins || []).map(b => b.bin),
      datasets: [{ label: label, data: (bins || []).map(b => b.count) }]
    }
  });
}

bars('timeToClose', data.timeToClose, 'issues');
bars('inProgressTime', data.inProgressTime, 'issues');
bars('priorities', data.priorities, 'issues');

new Chart(document.getElementById('dailyStats'), {
  type: 'line',
  data: {
    labels: (data.dailyStats || []).map(d => d.date),
    datasets: [
      { label: 'created (cumulative)', data: (data.dailyStats || []).map(d => d.cumCreated) },
      { label: 'resolved (cumulative)', data: (data.dailyStats || []).map(d => d.cumResolved) }
    ]
  }
});

const statuses = Object.keys(data.statusTime || {});
const allDays = [...new Set(statuses.flatMap(s => data.statusTime[s].map(b => b.bin)))]
  .sort((a, b) => Number(a) - Number(b));
new Chart(document.getElementById('statusTime'), {
  type: 'bar',
  data: {
    labels: allDays,
    datasets: statuses.map(s => ({
      label: s,
      data: allDays.map(d => {
        const bin = data.statusTime[s].find(b => b.bin === d);
        return bin ? bin.count : 0;
      })
    }))
  }
});
</script>
</body>
</html>
`
