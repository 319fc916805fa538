package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

var zigSeeds = []string{
	"",
	"pub fn main() void {}\n",
	"//! Allocator interface.\nconst std = @import(\"std\");\n/// Creates a list.\npub fn init(allocator: std.mem.Allocator) !@This() {\n    return .{};\n}\n",
	"pub const Error = error{ OutOfMemory, Overflow };\n",
	"pub const List = struct {\n    items: []u8,\n    pub fn append(self: *List, x: u8) !void { _ = x; }\n    fn grow(self: *List) void {}\n};\n",
	"pub const Tag = enum(u8) { a, b, _ };\npub const U = union(enum) { int: i64, none };\n",
	"pub fn Generic(comptime T: type) type {\n    return struct { value: T };\n}\n",
	"pub var counter: usize = 0;\npub const s = \\\\multi\n    \\\\line\n;\n",
	"test \"skip me\" { try expect(true); }\ncomptime { _ = 1; }\n",
	"pub extern \"c\" fn write(fd: c_int, buf: [*]const u8, len: usize) isize;\n",
	"pub inline fn max(a: anytype, b: @TypeOf(a)) @TypeOf(a) { return if (a > b) a else b; }\n",
	"const @\"quoted name\" = 0x1F_FF;\npub const c = 'x';\n",
	"pub fn broken( {\n",
	"pub const s = \"unterminated\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range zigSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву, добавляем все *.zig файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".zig" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
