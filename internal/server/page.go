package server

import "html/template"

type pageData struct {
	SVG      template.HTML
	Analysis string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>State statistics</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.chart { position: relative; }
.axis-text { font-size: 16px; }
.axis-text.active { font-weight: bold; fill: black; }
.axis-text.inactive { fill: #aaa; cursor: pointer; }
.axis-text.inactive:hover { fill: #333; }
.mark { cursor: default; }
.tooltip { position: absolute; pointer-events: none; background: rgba(0,0,0,.8); color: #fff; padding: 6px 10px; border-radius: 4px; font-size: 12px; opacity: 0; }
#analysis { max-width: 900px; margin-top: 5em; }
</style>
</head>
<body>
<div class="chart">{{.SVG}}<div class="tooltip"></div></div>
<p id="analysis">{{.Analysis}}</p>
<script>
document.querySelectorAll(".axis-text.inactive[data-axis-name]").forEach(function (el) {
  el.addEventListener("click", function () {
    fetch("/api/axis/" + el.dataset.axisName, { method: "POST" }).then(function () { location.reload(); });
  });
});
var tip = document.querySelector(".tooltip");
document.querySelectorAll(".mark").forEach(function (el) {
  var title = el.querySelector("title");
  var lines = title ? title.textContent.split("\n") : [];
  el.addEventListener("mouseover", function (ev) {
    tip.innerHTML = "";
    lines.forEach(function (line, i) {
      if (i === 1) { tip.appendChild(document.createElement("hr")); }
      else if (i > 1) { tip.appendChild(document.createElement("br")); }
      tip.appendChild(document.createTextNode(line));
    });
    tip.style.left = (ev.offsetX + 20) + "px";
    tip.style.top = (ev.offsetY - 20) + "px";
    tip.style.opacity = 1;
  });
  el.addEventListener("mouseout", function () { tip.style.opacity = 0; });
});
</script>
</body>
</html>
`))
