package inject

// RuntimeExport is the name of the injection function exported by the
// runtime module.
const RuntimeExport = "inject"

// RuntimeMode selects the runtime flavour.
type RuntimeMode int

const (
	// RuntimeProduction applies each key once and is what merged calls target.
	RuntimeProduction RuntimeMode = iota
	// RuntimeDevelopment replaces the content of a key on every call so
	// edited modules update in place.
	RuntimeDevelopment
)

// RuntimeSource returns the source of the runtime module that receives
// injection calls of the given delivery shape.
func RuntimeSource(mode RuntimeMode, d Delivery) string {
	if mode == RuntimeDevelopment {
		return devRuntime
	}
	if d == DeliveryMap {
		return mapRuntime
	}
	return concatRuntime
}

const concatRuntime = `
const injected = {};

export const inject = (id, css) => {
	if (!css || id in injected) {
		return;
	}

	injected[id] = true;

	const style = document.createElement('style');
	style.id = 've' + id;
	style.textContent = css;

	document.head.appendChild(style);
};
`

const mapRuntime = `
const injected = {};

export const inject = (map) => {
	let css = '';
	let id;

	for (const key in map) {
		if (key in injected) {
			continue;
		}

		if (!id) {
			id = key;
		}

		injected[key] = true;
		css += map[key];
	}

	if (!css) {
		return;
	}

	const style = document.createElement('style');
	style.id = 've' + id;
	style.textContent = css;

	document.head.appendChild(style);
};
`

const devRuntime = `
export function inject (id, content) {
	let elementId = 've' + id;
	let style = document.getElementById(elementId);

	if (!style) {
		style = document.createElement('style');
		style.id = elementId;

		document.head.appendChild(style);
	}

	style.textContent = content;
}
`
