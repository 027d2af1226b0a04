package server

// indexHTML is the review page. It polls the JSON API so the server needs no
// bundled frontend assets.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>photosift - duplicate review</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; background: #fafafa; }
  h1 { font-size: 1.3rem; }
  .set { border: 1px solid #ddd; border-radius: 6px; background: #fff; margin-bottom: 1.5rem; padding: 1rem; }
  .set h2 { font-size: 1rem; margin: 0 0 .7rem; }
  .photos { display: flex; flex-wrap: wrap; gap: 1rem; }
  .photo { width: 220px; }
  .photo img { max-width: 100%; border-radius: 4px; border: 3px solid transparent; }
  .photo.keep img { border-color: #2a9d42; }
  .photo .meta { font-size: .75rem; color: #555; word-break: break-all; }
  .photo .badge { font-size: .7rem; font-weight: 600; }
  .photo.keep .badge { color: #2a9d42; }
  .photo.drop .badge { color: #c03a2b; }
  button { margin-top: .5rem; }
</style>
</head>
<body>
<h1>photosift &mdash; duplicate review</h1>
<p id="status">Loading&hellip;</p>
<div id="sets"></div>
<script>
function fmtSize(n) {
  if (n >= 1048576) return (n / 1048576).toFixed(1) + ' MB';
  if (n >= 1024) return (n / 1024).toFixed(1) + ' KB';
  return n + ' B';
}

async function cleanSet(paths) {
  if (!confirm('Move ' + paths.length + ' file(s) to trash?')) return;
  await fetch('/api/clean', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({paths: paths}),
  });
  load();
}

async function load() {
  const resp = await fetch('/api/sets');
  const sets = await resp.json() || [];
  const status = document.getElementById('status');
  const root = document.getElementById('sets');
  root.innerHTML = '';
  status.textContent = sets.length ? sets.length + ' duplicate set(s)' : 'No duplicate sets. Run photosift scan first.';

  for (const set of sets) {
    const div = document.createElement('div');
    div.className = 'set';
    const drops = (set.drop || []).map(p => p.path);
    div.innerHTML = '<h2>Set #' + set.class_id + ' (' + set.photos.length + ' photos)</h2>';
    const row = document.createElement('div');
    row.className = 'photos';
    for (const p of set.photos) {
      const kept = set.keep && set.keep.path === p.path;
      const cell = document.createElement('div');
      cell.className = 'photo ' + (kept ? 'keep' : 'drop');
      cell.innerHTML =
        '<img src="/api/image?path=' + encodeURIComponent(p.path) + '" loading="lazy">' +
        '<div class="badge">' + (kept ? 'KEEP' : 'DROP') + '</div>' +
        '<div class="meta">' + p.path + '<br>' + fmtSize(p.size_bytes) +
        (p.width ? ' &middot; ' + p.width + 'x' + p.height : '') + '</div>';
      row.appendChild(cell);
    }
    div.appendChild(row);
    if (drops.length) {
      const btn = document.createElement('button');
      btn.textContent = 'Trash ' + drops.length + ' duplicate(s)';
      btn.onclick = () => cleanSet(drops);
      div.appendChild(btn);
    }
    root.appendChild(div);
  }
}

load();
setInterval(load, 30000);
</script>
</body>
</html>
`
