package clock

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClock(t *testing.T) {
	Convey("Given a started clock with a 1200ms lead-in", t, func() {
		ft := &fakeTime{t: time.Unix(1000, 0)}
		c := New(ft.now, 1200*time.Millisecond)
		c.Start()

		Convey("Game time starts negative and runs with the wall", func() {
			So(c.Elapsed(), ShouldEqual, -1200*time.Millisecond)
			ft.advance(1500 * time.Millisecond)
			So(c.Elapsed(), ShouldEqual, 300*time.Millisecond)
		})

		Convey("When paused", func() {
			ft.advance(2 * time.Second)
			So(c.Pause(), ShouldBeTrue)
			ft.advance(5 * time.Second)

			Convey("Game time stands still", func() {
				So(c.Paused(), ShouldBeTrue)
				So(c.Elapsed(), ShouldEqual, 800*time.Millisecond)
			})

			Convey("Pausing again does nothing", func() {
				So(c.Pause(), ShouldBeFalse)
				So(c.Elapsed(), ShouldEqual, 800*time.Millisecond)
			})

			Convey("And resumed", func() {
				c.Resume()
				So(c.Resuming(), ShouldBeTrue)

				Convey("The clock stays paused through the lead-in", func() {
					ft.advance(time.Second)
					So(c.Tick(), ShouldBeFalse)
					So(c.Paused(), ShouldBeTrue)
					So(c.Elapsed(), ShouldEqual, 800*time.Millisecond)
				})

				Convey("Game time continues from the pause point", func() {
					ft.advance(1200 * time.Millisecond)
					So(c.Tick(), ShouldBeTrue)
					So(c.Paused(), ShouldBeFalse)
					So(c.Elapsed(), ShouldEqual, 800*time.Millisecond)

					ft.advance(100 * time.Millisecond)
					So(c.Elapsed(), ShouldEqual, 900*time.Millisecond)
					So(c.Tick(), ShouldBeFalse)
				})

				Convey("Pausing during the lead-in cancels the resume", func() {
					ft.advance(600 * time.Millisecond)
					So(c.Pause(), ShouldBeFalse)
					So(c.Resuming(), ShouldBeFalse)

					ft.advance(2 * time.Second)
					So(c.Tick(), ShouldBeFalse)
					So(c.Elapsed(), ShouldEqual, 800*time.Millisecond)

					Convey("And the paused time is counted once", func() {
						c.Resume()
						ft.advance(1200 * time.Millisecond)
						So(c.Tick(), ShouldBeTrue)
						So(c.Elapsed(), ShouldEqual, 800*time.Millisecond)
					})
				})
			})
		})

		Convey("Resume without a pause does nothing", func() {
			c.Resume()
			So(c.Resuming(), ShouldBeFalse)
		})

		Convey("Start clears a pause", func() {
			c.Pause()
			c.Resume()
			ft.advance(3 * time.Second)
			c.Start()
			So(c.Paused(), ShouldBeFalse)
			So(c.Resuming(), ShouldBeFalse)
			So(c.Elapsed(), ShouldEqual, -1200*time.Millisecond)
		})
	})
}

func TestDeadline(t *testing.T) {
	Convey("Given an unset deadline", t, func() {
		var d Deadline
		at := time.Unix(10, 0)

		So(d.Pending(), ShouldBeFalse)
		So(d.Due(at), ShouldBeFalse)

		Convey("When set, it is due once at or after its moment", func() {
			d.Set(at)
			So(d.Due(at.Add(-time.Nanosecond)), ShouldBeFalse)
			So(d.Due(at), ShouldBeTrue)
			So(d.Due(at.Add(time.Second)), ShouldBeFalse)
		})

		Convey("When cancelled, it never fires", func() {
			d.Set(at)
			d.Cancel()
			So(d.Due(at.Add(time.Hour)), ShouldBeFalse)
		})
	})
}
