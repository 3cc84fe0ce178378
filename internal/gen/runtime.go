package gen

// runtimeSource is the shared module imported by every generated file.
const runtimeSource = header + `

/** Raised when input does not match a generated schema. */
export class DeserializationError extends Error {
	readonly path: string;

	constructor(path: string, message: string) {
		super(path + ": " + message);
		this.name = "DeserializationError";
		this.path = path;
	}
}

/** Reads a value of type T from untyped input found at path. */
export type Reader<T> = (value: unknown, path: string) => T;

export function asObject(value: unknown, path: string): Record<string, unknown> {
	if (typeof value !== "object" || value === null || Array.isArray(value)) {
		throw new DeserializationError(path, "expected an object, got " + describe(value));
	}

	return value as Record<string, unknown>;
}

export function asNumber(value: unknown, path: string): number {
	if (typeof value !== "number" || !Number.isFinite(value)) {
		throw new DeserializationError(path, "expected a number, got " + describe(value));
	}

	return value;
}

export function asString(value: unknown, path: string): string {
	if (typeof value !== "string") {
		throw new DeserializationError(path, "expected a string, got " + describe(value));
	}

	return value;
}

export function asBoolean(value: unknown, path: string): boolean {
	if (typeof value !== "boolean") {
		throw new DeserializationError(path, "expected a boolean, got " + describe(value));
	}

	return value;
}

export function asArray<T>(read: Reader<T>): Reader<T[]> {
	return (value, path) => {
		if (!Array.isArray(value)) {
			throw new DeserializationError(path, "expected an array, got " + describe(value));
		}

		return value.map((item, i) => read(item, path + "[" + i + "]"));
	};
}

export function asRecord<K extends PropertyKey, V>(
	key: (raw: string, path: string) => K,
	read: Reader<V>,
): Reader<Record<K, V>> {
	return (value, path) => {
		const source = asObject(value, path);
		const out = {} as Record<K, V>;

		for (const [raw, item] of Object.entries(source)) {
			const itemPath = path + "[" + JSON.stringify(raw) + "]";
			out[key(raw, itemPath)] = read(item, itemPath);
		}

		return out;
	};
}

/** Treats null and undefined as absent. */
export function asOptional<T>(read: Reader<T>): Reader<T | undefined> {
	return (value, path) => (value === undefined || value === null ? undefined : read(value, path));
}

export function keyNumber(raw: string, path: string): number {
	const n = Number(raw);
	if (raw.trim() === "" || !Number.isFinite(n)) {
		throw new DeserializationError(path, "expected a numeric key, got " + JSON.stringify(raw));
	}

	return n;
}

export function keyString(raw: string): string {
	return raw;
}

/**
 * Reads the first of keys present in source. When none is present the
 * fallback is used, or the field is reported missing if there is none.
 */
export function field<T>(
	source: Record<string, unknown>,
	path: string,
	keys: readonly string[],
	read: Reader<T>,
	fallback?: () => T,
): T {
	for (const key of keys) {
		if (Object.prototype.hasOwnProperty.call(source, key) && source[key] !== undefined) {
			return read(source[key], path + "." + key);
		}
	}

	if (fallback !== undefined) {
		return fallback();
	}

	throw new DeserializationError(path + "." + keys[0], "missing required field");
}

function describe(value: unknown): string {
	if (value === null) {
		return "null";
	}

	if (Array.isArray(value)) {
		return "array";
	}

	return typeof value;
}
`
