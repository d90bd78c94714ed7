package autoplay

// SolverScript is the built-in reference strategy. It reads the full state
// snapshot (including fields a human player would not see, like the guess
// target) and plays every mechanic to a terminal state: discrete mechanics
// are solved outright, continuous ones are ridden to their countdown.
const SolverScript = `
function input(fields) {
  var inp = {};
  for (var k in fields) inp[k] = fields[k];
  return {type: "input", input: inp};
}

function tick(ms) {
  return {type: "tick", deltaMs: ms || 100};
}

function indexOf(list, v) {
  for (var i = 0; i < list.length; i++) {
    if (list[i] === v) return i;
  }
  return -1;
}

function onState(state) {
  var d = state.data;
  switch (state.config.mechanic) {

  case "guess":
    if (d.pending.length < d.target.length) {
      return input({type: "select", index: indexOf(d.alphabet, d.target[d.pending.length])});
    }
    return input({type: "submit"});

  case "match":
    if (d.secondPick >= 0) return tick(150); // let the pending pair settle
    var want = null;
    if (d.firstPick >= 0) want = d.cards[d.firstPick].symbol;
    for (var i = 0; i < d.cards.length; i++) {
      var c = d.cards[i];
      if (c.matched || c.faceUp) continue;
      if (want === null || c.symbol === want) return input({type: "select", index: i});
    }
    return tick(150);

  case "sort":
    if (d.selected >= 0) {
      for (var j = 0; j < d.items.length; j++) {
        if (j !== d.selected && d.items[j] === d.target[d.selected]) {
          return input({type: "select", index: j});
        }
      }
      return input({type: "select", index: d.selected}); // deselect, should not happen
    }
    for (var i = 0; i < d.items.length; i++) {
      if (d.items[i] !== d.target[i]) return input({type: "select", index: i});
    }
    return tick(100);

  case "deduce":
    return input({type: "select", index: indexOf(d.candidates, d.secret)});

  case "hunt":
    for (var i = 0; i < d.cells.length; i++) {
      if (d.cells[i].target && !d.cells[i].found) return input({type: "select", index: i});
    }
    return tick(100);

  case "memory":
    if (d.phase !== "input") return tick(100);
    return input({type: "select", index: d.sequence[d.inputPos]});

  case "trace":
    if (d.phase !== "input") return tick(100);
    return input({type: "select", index: d.path[d.inputPos]});

  case "reaction":
    for (var i = 0; i < d.targets.length; i++) {
      if (!d.targets[i].decoy) return input({type: "select", index: d.targets[i].id});
    }
    return tick(100);

  default:
    // catch, dodge, bounce, chase: ride the countdown.
    return tick(100);
  }
}
`
